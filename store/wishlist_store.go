package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"brew-commerce/models"
)

// WishlistStore persists per-user wishlists, one document per user.
type WishlistStore struct {
	collection *mongo.Collection
}

func NewWishlistStore(db *mongo.Database) *WishlistStore {
	return &WishlistStore{collection: db.Collection("wishlists")}
}

// Get returns the user's wishlist or ErrWishlistNotFound.
func (s *WishlistStore) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&wishlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWishlistNotFound
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return &wishlist, nil
}

// SetItems replaces the wishlist's item list, creating the document if the
// user has no wishlist yet.
func (s *WishlistStore) SetItems(ctx context.Context, userID string, items []models.WishlistItem) error {
	update := bson.M{
		"$set":         bson.M{"items": items},
		"$setOnInsert": bson.M{"user_id": userID},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, opts); err != nil {
		return fmt.Errorf("set wishlist items: %w", err)
	}
	return nil
}
