package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPrepare_FillsDefaultsOnly(t *testing.T) {
	now := time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)

	o := &Order{Line: Line{PlantID: "p", TotalQuantity: 3, Price: 45}}
	o.Prepare(now)
	assert.False(t, o.ID.IsZero())
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, now.UnixMilli(), o.Timestamp)
	assert.Equal(t, 3, o.Line.TotalQuantity)
	assert.Equal(t, 45.0, o.Line.Price)

	kept := &Order{Status: StatusShipped, Timestamp: 42}
	kept.Prepare(now)
	assert.Equal(t, StatusShipped, kept.Status)
	assert.Equal(t, int64(42), kept.Timestamp)
}

func TestCanDelete(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, "Cancelled"} {
		o := &Order{Status: s}
		assert.NoError(t, o.CanDelete(), s)
	}

	delivered := &Order{Status: StatusDelivered}
	assert.ErrorIs(t, delivered.CanDelete(), ErrDelivered)
}

func TestCustomerView_JSONFlattensOrder(t *testing.T) {
	view := CustomerView{
		Order: Order{
			ID:       primitive.NewObjectID(),
			Customer: Customer{Email: "ann@example.com"},
			Line:     Line{PlantID: "abc", TotalQuantity: 2, Price: 10},
			Status:   StatusPending,
		},
		Name:     "Monstera",
		Price:    12.5,
		Quantity: 2,
	}

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Monstera", got["name"])
	assert.Equal(t, 12.5, got["price"])
	assert.Equal(t, "Pending", got["status"])
	assert.Contains(t, got, "userInfo")
	assert.Contains(t, got, "plantInfo")
}
