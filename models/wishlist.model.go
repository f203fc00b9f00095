package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem is a saved-for-later product. Uniqueness is per
// (user, product).
type WishlistItem struct {
	ProductID string    `bson:"product_id" json:"productId"`
	Image     string    `bson:"image" json:"image"`
	Title     string    `bson:"title" json:"title"`
	Price     float64   `bson:"price" json:"price"`
	AddedAt   time.Time `bson:"added_at,omitempty" json:"added_at,omitempty"`
}

// Wishlist holds a user's saved items.
type Wishlist struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID string             `bson:"user_id" json:"userId"`
	Items  []WishlistItem     `bson:"items" json:"items"`
}
