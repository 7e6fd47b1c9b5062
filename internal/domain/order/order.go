package order

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("order: not found")
	ErrDelivered = errors.New("order: delivered orders cannot be deleted")
)

// Status is an open set; only StatusDelivered changes behaviour.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
)

// Customer is the buyer snapshot captured at checkout.
type Customer struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

// Line references the purchased plant by its hex id, as sent by the client.
type Line struct {
	PlantID       string  `bson:"plantId" json:"plantId"`
	TotalQuantity int     `bson:"totalQuantity" json:"totalQuantity"`
	Price         float64 `bson:"price" json:"price"`
}

type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Customer  Customer           `bson:"userInfo" json:"userInfo"`
	Line      Line               `bson:"plantInfo" json:"plantInfo"`
	Seller    string             `bson:"seller" json:"seller"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Status    Status             `bson:"status" json:"status"`
	Timestamp int64              `bson:"timeStamp,omitempty" json:"timeStamp,omitempty"`
}

// Prepare fills server-side defaults before insert. Price and quantity are kept as sent.
func (o *Order) Prepare(now time.Time) {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.Timestamp == 0 {
		o.Timestamp = now.UnixMilli()
	}
}

func (o *Order) CanDelete() error {
	if o.Status == StatusDelivered {
		return ErrDelivered
	}
	return nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}

// CustomerView is an order enriched with the current catalog entry for the buyer's history page.
type CustomerView struct {
	Order    `bson:",inline"`
	PlantID  primitive.ObjectID `bson:"plantId" json:"plantId"`
	Image    string             `bson:"image" json:"image"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// SellerView is an order enriched with the plant name for the seller's management page.
type SellerView struct {
	Order   `bson:",inline"`
	PlantID primitive.ObjectID `bson:"plantId" json:"plantId"`
	Name    string             `bson:"name" json:"name"`
}
