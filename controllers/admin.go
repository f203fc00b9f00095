package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"brew-commerce/services"
	"brew-commerce/store"
	"brew-commerce/utils"
)

// AdminController is the admin console: login, order review, dashboard
// stats, and account management.
type AdminController struct {
	Admin    *services.AdminService
	Email    *utils.EmailService
	Logger   *zap.Logger
	Username string
	Password string
}

func NewAdminController(admin *services.AdminService, email *utils.EmailService, logger *zap.Logger, username, password string) *AdminController {
	return &AdminController{Admin: admin, Email: email, Logger: logger, Username: username, Password: password}
}

// Login checks the configured console credentials and issues an admin token.
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if creds.Username != ac.Username || creds.Password != ac.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateAdminToken(creds.Username)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Success", "token": token})
}

// ListOrders returns every order, newest first.
func (ac *AdminController) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	orders, err := ac.Admin.ListOrders(ctx)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// UpdateOrderStatus transitions one order's status.
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	order, err := ac.Admin.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		var invalid *services.InvalidStatusError
		switch {
		case errors.As(err, &invalid):
			writeMessage(w, http.StatusBadRequest, invalid.Error())
		case errors.Is(err, store.ErrOrderNotFound):
			writeMessage(w, http.StatusNotFound, "Order not found")
		default:
			writeMessage(w, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	// Best-effort: the customer hears about the transition, the admin
	// response never waits on SendGrid.
	go func() {
		if err := ac.Email.SendStatusUpdate(order.Email, order); err != nil {
			ac.Logger.Warn("status update email failed",
				zap.String("order_id", order.OrderID),
				zap.Error(err))
		}
	}()

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "order": order})
}

// Stats returns the dashboard aggregate.
func (ac *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	stats, err := ac.Admin.Stats(ctx)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ListUsers returns the merged account view across both partitions.
func (ac *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	accounts, err := ac.Admin.ListAccounts(ctx)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": accounts})
}

// DeleteUser removes one account.
func (ac *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if err := ac.Admin.DeleteAccount(ctx, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "User deleted"})
}
