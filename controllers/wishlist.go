package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"brew-commerce/middleware"
	"brew-commerce/models"
	"brew-commerce/services"
)

// WishlistController exposes the authenticated wishlist endpoints.
type WishlistController struct {
	Wishlist *services.WishlistService
}

func NewWishlistController(wishlist *services.WishlistService) *WishlistController {
	return &WishlistController{Wishlist: wishlist}
}

// GetWishlist returns the caller's saved items.
func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	items, err := wc.Wishlist.Get(ctx, claims.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// AddToWishlist saves one product.
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var item models.WishlistItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if item.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "Product id is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := wc.Wishlist.Add(ctx, claims.ID, item); err != nil {
		if errors.Is(err, services.ErrItemInWishlist) {
			writeMessage(w, http.StatusConflict, "Item already in wishlist")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}
	writeMessage(w, http.StatusOK, "Item added to wishlist")
}

// RemoveFromWishlist drops a saved product.
func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID := mux.Vars(r)["productId"]

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := wc.Wishlist.Remove(ctx, claims.ID, productID); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeMessage(w, http.StatusNotFound, "Item not found in wishlist")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to remove item")
		return
	}
	writeMessage(w, http.StatusOK, "Item removed from wishlist")
}

// MoveToCart moves a saved product into the cart.
func (wc *WishlistController) MoveToCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "Product id is required")
		return
	}
	productID := req.ProductID

	ctx, cancel := requestContext(r)
	defer cancel()

	alreadyInCart, err := wc.Wishlist.MoveToCart(ctx, claims.ID, productID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeMessage(w, http.StatusNotFound, "Item not found in wishlist")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to move item")
		return
	}

	message := "Item moved to cart"
	if alreadyInCart {
		message = "Item already in cart, removed from wishlist"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       message,
		"alreadyInCart": alreadyInCart,
	})
}
