package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"brew-commerce/middleware"
	"brew-commerce/payment"
	"brew-commerce/services"
)

const defaultQRSize = 256

// PaymentController exposes the online-payment endpoints: hosted-checkout
// order creation and the manual QR/UPI reference.
type PaymentController struct {
	Gateway   payment.Gateway
	Cart      *services.CartService
	PayeeVPA  string
	PayeeName string
	Currency  string
	Window    time.Duration
}

func NewPaymentController(gateway payment.Gateway, cart *services.CartService, payeeVPA, payeeName, currency string, window time.Duration) *PaymentController {
	if window <= 0 {
		window = payment.DefaultWindow
	}
	return &PaymentController{
		Gateway:   gateway,
		Cart:      cart,
		PayeeVPA:  payeeVPA,
		PayeeName: payeeName,
		Currency:  currency,
		Window:    window,
	}
}

// CreateGatewayOrder registers the caller's cart total with the gateway and
// returns the hosted-checkout token.
func (pc *PaymentController) CreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Amount  float64 `json:"amount"`
		Receipt string  `json:"receipt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	amount := req.Amount
	if amount <= 0 {
		cart, err := pc.Cart.Get(ctx, claims.ID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}
		amount = cart.Total()
	}
	if amount <= 0 {
		writeMessage(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	order, err := pc.Gateway.CreateOrder(ctx, amount, req.Receipt)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to create payment order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// PaymentReference returns the manual payment reference for the caller's
// cart: the UPI URI plus how long the confirmation window stays open.
func (pc *PaymentController) PaymentReference(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	cart, err := pc.Cart.Get(ctx, claims.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	if cart.Total() <= 0 {
		writeMessage(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	ref := payment.Reference{
		PayeeVPA:  pc.PayeeVPA,
		PayeeName: pc.PayeeName,
		Amount:    cart.Total(),
		Currency:  pc.Currency,
		Note:      "Order payment",
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uri":           ref.URI(),
		"amount":        cart.Total(),
		"currency":      pc.Currency,
		"windowSeconds": int(pc.Window / time.Second),
	})
}

// PaymentQR renders the caller's cart total as a scannable UPI QR PNG.
func (pc *PaymentController) PaymentQR(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	cart, err := pc.Cart.Get(ctx, claims.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	if cart.Total() <= 0 {
		writeMessage(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	size := defaultQRSize
	if s := r.URL.Query().Get("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 64 && n <= 1024 {
			size = n
		}
	}

	ref := payment.Reference{
		PayeeVPA:  pc.PayeeVPA,
		PayeeName: pc.PayeeName,
		Amount:    cart.Total(),
		Currency:  pc.Currency,
		Note:      "Order payment",
	}
	png, err := ref.QRPNG(size)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to render QR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
