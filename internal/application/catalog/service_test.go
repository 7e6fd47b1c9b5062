package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	domain "github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"github.com/Zhima-Mochi/plantbay/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/plantbay/internal/observability"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.NewCatalogRepository(), observability.Nop())
}

func create(t *testing.T, svc *Service, name, seller string, qty int) string {
	t.Helper()
	res, err := svc.CreateItem(context.Background(), &domain.Item{
		Name:     name,
		Price:    12.5,
		Quantity: qty,
		Seller:   domain.Seller{Email: seller},
	})
	require.NoError(t, err)
	require.True(t, res.Acknowledged)
	return res.InsertedID.Hex()
}

func TestCreateAndGetItem(t *testing.T) {
	svc := newService(t)
	id := create(t, svc, "Fern", "sam@example.com", 10)

	item, err := svc.GetItem(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Fern", item.Name)
	assert.Equal(t, 10, item.Quantity)
}

func TestGetItem_Errors(t *testing.T) {
	svc := newService(t)

	_, err := svc.GetItem(context.Background(), "not-hex")
	assert.ErrorIs(t, err, store.ErrInvalidID)

	_, err = svc.GetItem(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateItem_Nil(t *testing.T) {
	_, err := newService(t).CreateItem(context.Background(), nil)
	assert.ErrorIs(t, err, ErrItemMissing)
}

func TestAdjustQuantity_IncreaseThenDecreaseRestores(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	id := create(t, svc, "Fern", "sam@example.com", 10)

	res, err := svc.AdjustQuantity(ctx, id, 3, domain.Decrease)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)

	item, err := svc.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)

	_, err = svc.AdjustQuantity(ctx, id, 3, domain.Increase)
	require.NoError(t, err)
	item, err = svc.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
}

func TestAdjustQuantity_UnknownDirectionDecrements(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	id := create(t, svc, "Fern", "sam@example.com", 2)

	_, err := svc.AdjustQuantity(ctx, id, 5, domain.Direction("whatever"))
	require.NoError(t, err)

	item, err := svc.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, -3, item.Quantity)
}

func TestAdjustQuantity_MissingItemMatchesNothing(t *testing.T) {
	res, err := newService(t).AdjustQuantity(context.Background(), primitive.NewObjectID().Hex(), 1, domain.Increase)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.MatchedCount)
}

func TestListItemsForSellerAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	fern := create(t, svc, "Fern", "sam@example.com", 1)
	create(t, svc, "Cactus", "sam@example.com", 1)
	create(t, svc, "Palm", "pat@example.com", 1)

	items, err := svc.ListItemsForSeller(ctx, "sam@example.com")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	res, err := svc.DeleteItem(ctx, fern)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	all, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
