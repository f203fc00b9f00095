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

// CartController exposes the authenticated cart endpoints.
type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

// GetCart returns the caller's cart items and total.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	cart, err := cc.Cart.Get(ctx, claims.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": cart.Items,
		"total": cart.Total(),
	})
}

// AddToCart puts one product into the cart.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var item models.CartItem
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

	if err := cc.Cart.Add(ctx, claims.ID, item); err != nil {
		if errors.Is(err, services.ErrItemInCart) {
			writeMessage(w, http.StatusConflict, "Item already in cart")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}
	writeMessage(w, http.StatusOK, "Item added to cart")
}

// UpdateQuantity increases or decreases one line's quantity.
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID := mux.Vars(r)["productId"]
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Action != services.QuantityIncrease && req.Action != services.QuantityDecrease {
		writeMessage(w, http.StatusBadRequest, "Action must be increase or decrease")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := cc.Cart.UpdateQuantity(ctx, claims.ID, productID, req.Action); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeMessage(w, http.StatusNotFound, "Item not found in cart")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to update quantity")
		return
	}
	writeMessage(w, http.StatusOK, "Quantity updated")
}

// RemoveFromCart drops a line from the cart.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID := mux.Vars(r)["productId"]

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := cc.Cart.Remove(ctx, claims.ID, productID); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to remove item")
		return
	}
	writeMessage(w, http.StatusOK, "Item removed from cart")
}
