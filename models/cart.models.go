package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a single line in a cart. At most one CartItem per product_id
// may exist in a cart.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Image     string  `bson:"image" json:"image"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// LineTotal returns price * quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is a user's staging area of selected, not-yet-purchased items. It is
// created lazily on first add and emptied, not deleted, on order placement.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"user_id" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Total sums the line totals of all items.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}
