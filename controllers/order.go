package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"brew-commerce/middleware"
	"brew-commerce/services"
	"brew-commerce/store"
)

// OrderController exposes order placement, history, and owner cancellation.
type OrderController struct {
	Checkout *services.CheckoutService
	Admin    *services.AdminService
}

func NewOrderController(checkout *services.CheckoutService, admin *services.AdminService) *OrderController {
	return &OrderController{Checkout: checkout, Admin: admin}
}

// PlaceOrder turns the caller's cart into an order.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req services.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Email == "" {
		req.Email = claims.Email
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := oc.Checkout.PlaceOrder(ctx, claims.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPaymentMethod):
			writeMessage(w, http.StatusBadRequest, "Invalid payment method")
		case errors.Is(err, services.ErrEmptyCart):
			writeMessage(w, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, services.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		default:
			writeMessage(w, http.StatusInternalServerError, "Failed to place order")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Order placed successfully",
		"orderId":       result.OrderID,
		"transactionId": result.TransactionID,
	})
}

// GetOrders returns the caller's order history, newest first.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	orders, err := oc.Admin.CustomerOrders(ctx, claims.Email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// CancelOrder lets the order owner cancel with a reason.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID := mux.Vars(r)["orderId"]
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Reason == "" {
		writeMessage(w, http.StatusBadRequest, "Cancellation reason is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := oc.Admin.CancelOrder(ctx, orderID, claims.Email, req.Reason); err != nil {
		switch {
		case errors.Is(err, store.ErrOrderNotFound):
			writeMessage(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrCancelForbidden):
			writeMessage(w, http.StatusForbidden, "You can only cancel your own orders")
		case errors.Is(err, services.ErrAlreadyCancelled):
			writeMessage(w, http.StatusBadRequest, "Order is already cancelled")
		default:
			writeMessage(w, http.StatusInternalServerError, "Failed to cancel order")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order cancelled successfully",
	})
}
