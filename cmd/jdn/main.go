package main

import "github.com/tatianab/just-do-now/cmd/jdn/root"

func main() {
	root.Execute()
}
