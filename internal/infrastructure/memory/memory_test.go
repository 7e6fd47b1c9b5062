package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Zhima-Mochi/plantbay/internal/domain/account"
	"github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
	"github.com/Zhima-Mochi/plantbay/internal/domain/order"
)

func TestAccountRepository_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	first, err := account.New("ann@example.com", account.Profile{Name: "Ann"}, time.Now())
	require.NoError(t, err)

	stored, inserted, err := repo.InsertIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, first.ID, stored.ID)

	second, err := account.New("ann@example.com", account.Profile{Name: "Someone Else"}, time.Now())
	require.NoError(t, err)

	stored, inserted, err = repo.InsertIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Ann", stored.Name)

	others, err := repo.ListExcept(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestAccountRepository_Updates(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	acc, _ := account.New("ann@example.com", account.Profile{}, time.Now())
	_, _, err := repo.InsertIfAbsent(ctx, acc)
	require.NoError(t, err)

	res, err := repo.SetRole(ctx, "ann@example.com", account.RoleSeller, account.StatusVerified)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(1), res.ModifiedCount)

	res, err = repo.SetRole(ctx, "ann@example.com", account.RoleSeller, account.StatusVerified)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(0), res.ModifiedCount)

	res, err = repo.SetStatus(ctx, "nobody@example.com", account.StatusRequested)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.MatchedCount)

	got, err := repo.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.RoleSeller, got.Role)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestCatalogRepository_IncrementQuantityIsInverse(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository()
	id, err := repo.Insert(ctx, &catalog.Item{Name: "Fern", Quantity: 10})
	require.NoError(t, err)

	_, err = repo.IncrementQuantity(ctx, id, -3)
	require.NoError(t, err)
	item, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)

	_, err = repo.IncrementQuantity(ctx, id, 3)
	require.NoError(t, err)
	item, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)

	res, err := repo.IncrementQuantity(ctx, primitive.NewObjectID(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.MatchedCount)
}

func TestCatalogRepository_ConcurrentIncrementsDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository()
	id, err := repo.Insert(ctx, &catalog.Item{Name: "Fern", Quantity: 0})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.IncrementQuantity(ctx, id, -1)
		}()
	}
	wg.Wait()

	item, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, -50, item.Quantity)
}

func TestCatalogRepository_ListBySellerAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository()
	a, _ := repo.Insert(ctx, &catalog.Item{Name: "Fern", Seller: catalog.Seller{Email: "sam@example.com"}})
	_, _ = repo.Insert(ctx, &catalog.Item{Name: "Cactus", Seller: catalog.Seller{Email: "sue@example.com"}})

	items, err := repo.ListBySeller(ctx, "sam@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Fern", items[0].Name)

	res, err := repo.Delete(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	res, err = repo.Delete(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Cactus", all[0].Name)
}

func TestOrderRepository_ListForCustomerDropsOrphans(t *testing.T) {
	ctx := context.Background()
	plants := NewCatalogRepository()
	orders := NewOrderRepository(plants)

	fern, _ := plants.Insert(ctx, &catalog.Item{Name: "Fern", Image: "fern.png", Category: "Indoor", Price: 12, Quantity: 4})
	gone := primitive.NewObjectID()

	mustInsert := func(o *order.Order) {
		_, err := orders.Insert(ctx, o)
		require.NoError(t, err)
	}
	mustInsert(&order.Order{Customer: order.Customer{Email: "ann@example.com"}, Line: order.Line{PlantID: fern.Hex(), TotalQuantity: 2, Price: 10}, Seller: "sam@example.com", Status: order.StatusPending})
	mustInsert(&order.Order{Customer: order.Customer{Email: "ann@example.com"}, Line: order.Line{PlantID: gone.Hex(), TotalQuantity: 1}, Seller: "sam@example.com"})
	mustInsert(&order.Order{Customer: order.Customer{Email: "ann@example.com"}, Line: order.Line{PlantID: "bogus"}, Seller: "sam@example.com"})
	mustInsert(&order.Order{Customer: order.Customer{Email: "bob@example.com"}, Line: order.Line{PlantID: fern.Hex(), TotalQuantity: 1}, Seller: "sam@example.com"})

	views, err := orders.ListForCustomer(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, fern, v.PlantID)
	assert.Equal(t, "Fern", v.Name)
	assert.Equal(t, "fern.png", v.Image)
	assert.Equal(t, "Indoor", v.Category)
	assert.Equal(t, 12.0, v.Price)
	assert.Equal(t, 2, v.Quantity)
	assert.Equal(t, 10.0, v.Line.Price)

	sellerViews, err := orders.ListForSeller(ctx, "sam@example.com")
	require.NoError(t, err)
	require.Len(t, sellerViews, 2)
	for _, sv := range sellerViews {
		assert.Equal(t, "Fern", sv.Name)
	}
}

func TestOrderRepository_SetStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderRepository(nil)
	id, err := orders.Insert(ctx, &order.Order{Status: order.StatusPending})
	require.NoError(t, err)

	res, err := orders.SetStatus(ctx, id, order.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	res, err = orders.SetStatus(ctx, id, order.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	del, err := orders.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	_, err = orders.Get(ctx, id)
	assert.ErrorIs(t, err, order.ErrNotFound)
}
