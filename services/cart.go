package services

import (
	"context"
	"errors"
	"fmt"

	"brew-commerce/models"
	"brew-commerce/store"
)

// Quantity actions accepted by UpdateQuantity.
const (
	QuantityIncrease = "increase"
	QuantityDecrease = "decrease"
)

// CartService implements cart line management: one line per product, lines
// removed when their quantity drops to zero.
type CartService struct {
	carts CartStore
}

func NewCartService(carts CartStore) *CartService {
	return &CartService{carts: carts}
}

// Get returns the user's cart; a user without a cart gets an empty one.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

// Add puts a product into the cart with quantity 1, creating the cart lazily.
// A product already in the cart is rejected with ErrItemInCart.
func (s *CartService) Add(ctx context.Context, userID string, item models.CartItem) error {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	for _, existing := range cart.Items {
		if existing.ProductID == item.ProductID {
			return ErrItemInCart
		}
	}

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	items := append(cart.Items, item)
	if err := s.carts.SetItems(ctx, userID, items); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

// UpdateQuantity increases or decreases a line's quantity; a line that
// reaches zero is removed.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, action string) error {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	index := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrItemNotFound
	}

	switch action {
	case QuantityIncrease:
		cart.Items[index].Quantity++
	case QuantityDecrease:
		cart.Items[index].Quantity--
	}

	if cart.Items[index].Quantity <= 0 {
		cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	}

	if err := s.carts.SetItems(ctx, userID, cart.Items); err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	return nil
}

// Remove drops a product's line from the cart. Removing a product that is
// not in the cart is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			return nil
		}
		return err
	}

	items := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}

	if err := s.carts.SetItems(ctx, userID, items); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}
