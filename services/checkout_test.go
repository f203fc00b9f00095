package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brew-commerce/models"
)

func newCheckoutFixture(t *testing.T) (*CheckoutService, *memCartStore, *memOrderLedger, *mockMailer) {
	t.Helper()
	carts := newMemCartStore()
	orders := newMemOrderLedger()
	mailer := &mockMailer{}
	identity := &stubIdentity{identity: &models.Identity{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
	}}
	ids := NewOrderIDGenerator(orders)
	ids.now = fixedClock(2025)

	svc := NewCheckoutService(identity, carts, orders, ids, mailer, zap.NewNop())
	return svc, carts, orders, mailer
}

func seedCart(t *testing.T, carts *memCartStore, userID string) {
	t.Helper()
	err := carts.SetItems(context.Background(), userID, []models.CartItem{
		{ProductID: "p1", Title: "Latte", Price: 200, Quantity: 2},
		{ProductID: "p2", Title: "Mug", Price: 200, Quantity: 1},
	})
	require.NoError(t, err)
}

func TestPlaceOrderCOD(t *testing.T) {
	svc, carts, orders, mailer := newCheckoutFixture(t)
	seedCart(t, carts, "user-1")

	result, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderRequest{
		Email:         "alice@example.com",
		Phone:         "9999999999",
		Address:       "42 Elm Street",
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.NoError(t, err)
	require.Equal(t, "2025001", result.OrderID)
	require.Nil(t, result.TransactionID)

	order := orders.get("2025001")
	require.NotNil(t, order)
	require.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, "alice", order.Username)
	require.Equal(t, 600.0, order.Total)
	require.Len(t, order.Items, 2)
	require.Nil(t, order.PaymentDetails)

	require.Empty(t, carts.items("user-1"), "cart should be emptied after placement")

	require.Eventually(t, func() bool { return mailer.callCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestPlaceOrderOnlineDefaultsPaid(t *testing.T) {
	svc, carts, orders, _ := newCheckoutFixture(t)
	seedCart(t, carts, "user-1")

	result, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderRequest{
		Email:         "alice@example.com",
		Address:       "42 Elm Street",
		PaymentMethod: models.PaymentMethodOnline,
		CardNumber:    "4111111111111111",
		Expiry:        "12/27",
		TransactionID: "TXN-abc",
	})
	require.NoError(t, err)
	require.NotNil(t, result.TransactionID)
	require.Equal(t, "TXN-abc", *result.TransactionID)

	order := orders.get(result.OrderID)
	require.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	require.NotNil(t, order.PaymentDetails)
	require.Equal(t, "4111111111111111", order.PaymentDetails.CardNumber)
}

func TestPlaceOrderHonorsExplicitPaymentStatus(t *testing.T) {
	svc, carts, orders, _ := newCheckoutFixture(t)
	seedCart(t, carts, "user-1")

	result, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderRequest{
		Email:         "alice@example.com",
		PaymentMethod: models.PaymentMethodOnline,
		PaymentStatus: models.PaymentStatusPending,
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPending, orders.get(result.OrderID).PaymentStatus)
}

func TestPlaceOrderInvalidPaymentMethod(t *testing.T) {
	svc, carts, orders, _ := newCheckoutFixture(t)
	seedCart(t, carts, "user-1")

	_, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderRequest{
		PaymentMethod: "Bitcoin",
	})
	require.ErrorIs(t, err, ErrInvalidPaymentMethod)

	count, _ := orders.Count(context.Background())
	require.Zero(t, count)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, carts, orders, _ := newCheckoutFixture(t)

	// No cart at all.
	_, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderRequest{
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.ErrorIs(t, err, ErrEmptyCart)

	// Cart exists but is empty.
	require.NoError(t, carts.SetItems(context.Background(), "user-1", nil))
	_, err = svc.PlaceOrder(context.Background(), "user-1", PlaceOrderRequest{
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.ErrorIs(t, err, ErrEmptyCart)

	count, _ := orders.Count(context.Background())
	require.Zero(t, count)
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	carts := newMemCartStore()
	orders := newMemOrderLedger()
	identity := &stubIdentity{err: errors.New("boom")}
	svc := NewCheckoutService(identity, carts, orders, NewOrderIDGenerator(orders), &mockMailer{}, zap.NewNop())
	seedCart(t, carts, "user-1")

	_, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderRequest{
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.Error(t, err)

	count, _ := orders.Count(context.Background())
	require.Zero(t, count)
}

func TestPlaceOrderSnapshotIsImmutable(t *testing.T) {
	svc, carts, orders, _ := newCheckoutFixture(t)
	seedCart(t, carts, "user-1")

	result, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderRequest{
		Email:         "alice@example.com",
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	// Refill the cart after placement; the order snapshot must not change.
	require.NoError(t, carts.SetItems(context.Background(), "user-1", []models.CartItem{
		{ProductID: "p9", Title: "Espresso", Price: 999, Quantity: 9},
	}))

	order := orders.get(result.OrderID)
	require.Len(t, order.Items, 2)
	require.Equal(t, 600.0, order.Total)
}

func TestPlaceOrderEmailFailureDoesNotFailOrder(t *testing.T) {
	carts := newMemCartStore()
	orders := newMemOrderLedger()
	mailer := &mockMailer{fail: errors.New("sendgrid down")}
	identity := &stubIdentity{identity: &models.Identity{ID: "user-1", Username: "alice"}}
	svc := NewCheckoutService(identity, carts, orders, NewOrderIDGenerator(orders), mailer, zap.NewNop())
	seedCart(t, carts, "user-1")

	result, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderRequest{
		Email:         "alice@example.com",
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.NoError(t, err)
	require.NotNil(t, orders.get(result.OrderID))

	require.Eventually(t, func() bool { return mailer.callCount() == 1 },
		time.Second, 10*time.Millisecond)
}
