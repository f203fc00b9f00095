package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brew-commerce/models"
	"brew-commerce/store"
)

// WishlistStore is the wishlist persistence consumed by WishlistService.
type WishlistStore interface {
	Get(ctx context.Context, userID string) (*models.Wishlist, error)
	SetItems(ctx context.Context, userID string, items []models.WishlistItem) error
}

// WishlistService manages saved-for-later items and the move-to-cart
// operation.
type WishlistService struct {
	wishlists WishlistStore
	carts     CartStore
}

func NewWishlistService(wishlists WishlistStore, carts CartStore) *WishlistService {
	return &WishlistService{wishlists: wishlists, carts: carts}
}

// Get returns the user's wishlist items; a user without a wishlist gets an
// empty list.
func (s *WishlistService) Get(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	wishlist, err := s.wishlists.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrWishlistNotFound) {
			return []models.WishlistItem{}, nil
		}
		return nil, err
	}
	return wishlist.Items, nil
}

// Add saves a product, creating the wishlist lazily. Duplicates per
// (user, product) are rejected with ErrItemInWishlist.
func (s *WishlistService) Add(ctx context.Context, userID string, item models.WishlistItem) error {
	items, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	for _, existing := range items {
		if existing.ProductID == item.ProductID {
			return ErrItemInWishlist
		}
	}

	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	if err := s.wishlists.SetItems(ctx, userID, append(items, item)); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

// Remove drops a product from the wishlist. Returns ErrItemNotFound when the
// product is not saved.
func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	wishlist, err := s.wishlists.Get(ctx, userID)
	if err != nil {
		return err
	}

	items := make([]models.WishlistItem, 0, len(wishlist.Items))
	for _, item := range wishlist.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	if len(items) == len(wishlist.Items) {
		return ErrItemNotFound
	}

	if err := s.wishlists.SetItems(ctx, userID, items); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}

// MoveToCart moves a saved product into the cart with quantity 1. When the
// product is already in the cart it is only removed from the wishlist, never
// duplicated. Returns whether the cart already had the product.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID string) (alreadyInCart bool, err error) {
	wishlist, err := s.wishlists.Get(ctx, userID)
	if err != nil {
		return false, err
	}

	var item *models.WishlistItem
	remaining := make([]models.WishlistItem, 0, len(wishlist.Items))
	for i := range wishlist.Items {
		if wishlist.Items[i].ProductID == productID {
			item = &wishlist.Items[i]
		} else {
			remaining = append(remaining, wishlist.Items[i])
		}
	}
	if item == nil {
		return false, ErrItemNotFound
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrCartNotFound) {
			return false, err
		}
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	for _, cartItem := range cart.Items {
		if cartItem.ProductID == productID {
			alreadyInCart = true
			break
		}
	}

	if !alreadyInCart {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: item.ProductID,
			Image:     item.Image,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  1,
		})
		if err := s.carts.SetItems(ctx, userID, cart.Items); err != nil {
			return false, fmt.Errorf("move to cart: %w", err)
		}
	}

	if err := s.wishlists.SetItems(ctx, userID, remaining); err != nil {
		return alreadyInCart, fmt.Errorf("remove moved item: %w", err)
	}
	return alreadyInCart, nil
}
