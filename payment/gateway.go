// Package payment holds the online-payment pieces: the gateway order
// creation used by the hosted-checkout flow and the manual QR/UPI
// confirmation flow.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
)

// ErrGateway wraps any failure to create a gateway order.
var ErrGateway = errors.New("payment gateway error")

// GatewayOrder is the token handed to the hosted checkout UI.
type GatewayOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"` // minor units (paise)
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

// Gateway creates provider-side orders for hosted checkout.
type Gateway interface {
	CreateOrder(ctx context.Context, amount float64, receipt string) (*GatewayOrder, error)
}

// RazorpayGateway creates orders against Razorpay. The key id is exposed to
// the client so it can open the hosted checkout.
type RazorpayGateway struct {
	client   *razorpay.Client
	keyID    string
	currency string
}

func NewRazorpayGateway(keyID, keySecret, currency string) *RazorpayGateway {
	return &RazorpayGateway{
		client:   razorpay.NewClient(keyID, keySecret),
		keyID:    keyID,
		currency: currency,
	}
}

// CreateOrder registers the amount with the gateway and returns the order
// token for the hosted checkout UI.
func (g *RazorpayGateway) CreateOrder(_ context.Context, amount float64, receipt string) (*GatewayOrder, error) {
	paise := int64(math.Round(amount * 100))
	data := map[string]interface{}{
		"amount":   paise,
		"currency": g.currency,
		"receipt":  receipt,
	}

	resp, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create order: %v", ErrGateway, err)
	}

	id, ok := resp["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: response missing order id", ErrGateway)
	}

	return &GatewayOrder{
		OrderID:  id,
		Amount:   paise,
		Currency: g.currency,
		Key:      g.keyID,
	}, nil
}
