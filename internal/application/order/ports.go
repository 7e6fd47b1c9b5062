package order

import (
	"context"

	"github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
)

// InventoryPort adjusts catalog stock on behalf of the order workflow.
type InventoryPort interface {
	AdjustQuantity(ctx context.Context, itemID string, delta int, dir catalog.Direction) (store.UpdateResult, error)
}
