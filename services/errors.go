package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrUserNotFound         = errors.New("user not found")
	ErrItemInCart           = errors.New("item already in cart")
	ErrItemInWishlist       = errors.New("item already in wishlist")
	ErrItemNotFound         = errors.New("item not found")
	ErrAlreadyCancelled     = errors.New("order already cancelled")
	ErrCancelForbidden      = errors.New("order does not belong to caller")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// InvalidStatusError indicates an admin supplied a status outside the
// recognized order lifecycle.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q", e.Status)
}
