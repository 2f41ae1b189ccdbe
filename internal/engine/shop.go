package engine

import (
	"slices"

	"github.com/tatianab/just-do-now/internal/models"
)

// Purchase charges item.Cost and grants item.ID. Ownership is checked before
// funds. On error credits and inventory come back unchanged.
func Purchase(credits int, inventory []string, item models.ShopItem) (int, []string, error) {
	if slices.Contains(inventory, item.ID) {
		return credits, inventory, ErrAlreadyOwned
	}
	if credits < item.Cost {
		return credits, inventory, ErrInsufficientFunds
	}
	out := make([]string, 0, len(inventory)+1)
	out = append(out, inventory...)
	out = append(out, item.ID)
	return credits - item.Cost, out, nil
}
