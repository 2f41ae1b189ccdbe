package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBarWidth(t *testing.T) {
	for _, pct := range []float64{-10, 0, 50, 100, 250} {
		bar := ProgressBar(pct, 20)
		cells := strings.Count(bar, "█") + strings.Count(bar, "░")
		assert.Equal(t, 20, cells, "pct %v", pct)
	}
	assert.Equal(t, 10, strings.Count(ProgressBar(50, 20), "█"))
	assert.Empty(t, ProgressBar(50, 0))
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, GoldTheme.Border, ThemeFor(true).Border)
	assert.Equal(t, NeonTheme.Border, ThemeFor(false).Border)
}
