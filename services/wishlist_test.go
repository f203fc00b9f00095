package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"brew-commerce/models"
)

func newWishlistFixture() (*WishlistService, *memWishlistStore, *memCartStore) {
	wishlists := newMemWishlistStore()
	carts := newMemCartStore()
	return NewWishlistService(wishlists, carts), wishlists, carts
}

func TestWishlistGetMissingReturnsEmpty(t *testing.T) {
	svc, _, _ := newWishlistFixture()

	items, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestWishlistAddDuplicateRejected(t *testing.T) {
	svc, wishlists, _ := newWishlistFixture()

	require.NoError(t, svc.Add(context.Background(), "user-1", models.WishlistItem{ProductID: "p1"}))
	err := svc.Add(context.Background(), "user-1", models.WishlistItem{ProductID: "p1"})
	require.ErrorIs(t, err, ErrItemInWishlist)
	require.Len(t, wishlists.items("user-1"), 1)
}

func TestWishlistAddStampsAddedAt(t *testing.T) {
	svc, wishlists, _ := newWishlistFixture()

	require.NoError(t, svc.Add(context.Background(), "user-1", models.WishlistItem{ProductID: "p1"}))
	require.False(t, wishlists.items("user-1")[0].AddedAt.IsZero())
}

func TestWishlistRemoveMissingItem(t *testing.T) {
	svc, _, _ := newWishlistFixture()
	require.NoError(t, svc.Add(context.Background(), "user-1", models.WishlistItem{ProductID: "p1"}))

	err := svc.Remove(context.Background(), "user-1", "ghost")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestMoveToCart(t *testing.T) {
	svc, wishlists, carts := newWishlistFixture()
	require.NoError(t, svc.Add(context.Background(), "user-1", models.WishlistItem{
		ProductID: "p1", Title: "Tumbler", Price: 350,
	}))

	alreadyInCart, err := svc.MoveToCart(context.Background(), "user-1", "p1")
	require.NoError(t, err)
	require.False(t, alreadyInCart)

	require.Empty(t, wishlists.items("user-1"))
	cartItems := carts.items("user-1")
	require.Len(t, cartItems, 1)
	require.Equal(t, "Tumbler", cartItems[0].Title)
	require.Equal(t, 1, cartItems[0].Quantity)
}

func TestMoveToCartNeverDuplicatesCartLine(t *testing.T) {
	svc, wishlists, carts := newWishlistFixture()
	require.NoError(t, carts.SetItems(context.Background(), "user-1", []models.CartItem{
		{ProductID: "p1", Quantity: 3},
	}))
	require.NoError(t, svc.Add(context.Background(), "user-1", models.WishlistItem{ProductID: "p1"}))

	alreadyInCart, err := svc.MoveToCart(context.Background(), "user-1", "p1")
	require.NoError(t, err)
	require.True(t, alreadyInCart)

	// Removed from wishlist, cart line untouched.
	require.Empty(t, wishlists.items("user-1"))
	cartItems := carts.items("user-1")
	require.Len(t, cartItems, 1)
	require.Equal(t, 3, cartItems[0].Quantity)
}

func TestMoveToCartMissingItem(t *testing.T) {
	svc, _, _ := newWishlistFixture()
	require.NoError(t, svc.Add(context.Background(), "user-1", models.WishlistItem{ProductID: "p1"}))

	_, err := svc.MoveToCart(context.Background(), "user-1", "ghost")
	require.ErrorIs(t, err, ErrItemNotFound)
}
