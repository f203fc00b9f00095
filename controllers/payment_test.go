package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"brew-commerce/middleware"
	"brew-commerce/models"
	"brew-commerce/payment"
	"brew-commerce/services"
	"brew-commerce/utils"
)

// fakeCartStore backs a CartService without a database.
type fakeCartStore struct {
	items []models.CartItem
}

func (f *fakeCartStore) Get(_ context.Context, userID string) (*models.Cart, error) {
	return &models.Cart{UserID: userID, Items: f.items}, nil
}

func (f *fakeCartStore) SetItems(_ context.Context, _ string, items []models.CartItem) error {
	f.items = items
	return nil
}

func (f *fakeCartStore) Clear(ctx context.Context, userID string) error {
	return f.SetItems(ctx, userID, nil)
}

func authedRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, &utils.Claims{ID: "user-1"})
	return r.WithContext(ctx)
}

func TestPaymentReferenceCarriesConfiguredWindow(t *testing.T) {
	carts := &fakeCartStore{items: []models.CartItem{
		{ProductID: "p1", Price: 250, Quantity: 2},
	}}
	pc := NewPaymentController(nil, services.NewCartService(carts),
		"store@upi", "Store", "INR", 90*time.Second)

	w := httptest.NewRecorder()
	pc.PaymentReference(w, authedRequest(http.MethodGet, "/api/payment/reference"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		URI           string  `json:"uri"`
		Amount        float64 `json:"amount"`
		Currency      string  `json:"currency"`
		WindowSeconds int     `json:"windowSeconds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 90, resp.WindowSeconds)
	require.Equal(t, 500.0, resp.Amount)
	require.Equal(t, "INR", resp.Currency)
	require.True(t, strings.HasPrefix(resp.URI, "upi://pay?"))
}

func TestPaymentReferenceDefaultsWindow(t *testing.T) {
	pc := NewPaymentController(nil, services.NewCartService(&fakeCartStore{}),
		"store@upi", "Store", "INR", 0)

	require.Equal(t, payment.DefaultWindow, pc.Window)
}

func TestPaymentReferenceEmptyCart(t *testing.T) {
	pc := NewPaymentController(nil, services.NewCartService(&fakeCartStore{}),
		"store@upi", "Store", "INR", time.Minute)

	w := httptest.NewRecorder()
	pc.PaymentReference(w, authedRequest(http.MethodGet, "/api/payment/reference"))

	require.Equal(t, http.StatusBadRequest, w.Code)
}
