// Package store provides MongoDB-backed persistence for the storefront.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrWishlistNotFound = errors.New("wishlist not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOTPNotFound      = errors.New("otp not found")
)

// Connect opens a MongoDB client and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// Stores bundles every collection-backed store over one client.
type Stores struct {
	Users     *UserStore
	Carts     *CartStore
	Orders    *OrderStore
	Wishlists *WishlistStore
	Products  *ProductStore
	OTPs      *OTPStore
}

// New wires all stores against the named database.
func New(client *mongo.Client, dbName string) *Stores {
	db := client.Database(dbName)
	return &Stores{
		Users:     NewUserStore(db),
		Carts:     NewCartStore(db),
		Orders:    NewOrderStore(db),
		Wishlists: NewWishlistStore(db),
		Products:  NewProductStore(db),
		OTPs:      NewOTPStore(db),
	}
}
