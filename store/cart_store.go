package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"brew-commerce/models"
)

// CartStore persists per-user carts, one document per user.
type CartStore struct {
	collection *mongo.Collection
}

func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{collection: db.Collection("carts")}
}

// Get returns the user's cart or ErrCartNotFound.
func (s *CartStore) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &cart, nil
}

// SetItems replaces the cart's item list, creating the cart document if the
// user has none yet.
func (s *CartStore) SetItems(ctx context.Context, userID string, items []models.CartItem) error {
	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"items": items, "updated_at": now},
		"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, opts); err != nil {
		return fmt.Errorf("set cart items: %w", err)
	}
	return nil
}

// Clear empties the cart without deleting the document.
func (s *CartStore) Clear(ctx context.Context, userID string) error {
	return s.SetItems(ctx, userID, []models.CartItem{})
}
