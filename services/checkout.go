package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"brew-commerce/models"
	"brew-commerce/store"
)

// CartStore is the cart persistence consumed by checkout.
type CartStore interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	SetItems(ctx context.Context, userID string, items []models.CartItem) error
	Clear(ctx context.Context, userID string) error
}

// OrderLedger is the durable record of placed orders.
type OrderLedger interface {
	Insert(ctx context.Context, order *models.Order) error
	Latest(ctx context.Context) (*models.Order, error)
	FindByEmail(ctx context.Context, email string) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	Cancel(ctx context.Context, id string, reason string) error
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, n int64) ([]models.Order, error)
}

// IdentityResolver finds a user's display identity across both account
// partitions.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (*models.Identity, error)
}

// Mailer sends the order confirmation. Failures are logged by the caller and
// never block order placement.
type Mailer interface {
	SendOrderConfirmation(to string, order *models.Order) error
}

// PlaceOrderRequest carries the checkout form plus any payment confirmation
// produced by the client-side payment flow.
type PlaceOrderRequest struct {
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
	CardNumber    string `json:"cardNumber,omitempty"`
	Expiry        string `json:"expiry,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

// PlaceOrderResult is returned to the client after a successful placement.
type PlaceOrderResult struct {
	OrderID       string  `json:"orderId"`
	TransactionID *string `json:"transactionId"`
}

// CheckoutService turns a cart into an order: it validates the cart,
// resolves the payer identity, generates the order id, snapshots the items,
// persists the order, clears the cart, and fires the confirmation email.
type CheckoutService struct {
	identity IdentityResolver
	carts    CartStore
	orders   OrderLedger
	ids      *OrderIDGenerator
	mailer   Mailer
	logger   *zap.Logger
}

func NewCheckoutService(identity IdentityResolver, carts CartStore, orders OrderLedger, ids *OrderIDGenerator, mailer Mailer, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		identity: identity,
		carts:    carts,
		orders:   orders,
		ids:      ids,
		mailer:   mailer,
		logger:   logger,
	}
}

// PlaceOrder places an order from the user's cart.
//
// The order insert and the cart clear are two separate writes, not a
// transaction: a crash between them leaves already-ordered items in the
// cart. Accepted limitation of the single-document data model.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if req.PaymentMethod != models.PaymentMethodCOD && req.PaymentMethod != models.PaymentMethodOnline {
		return nil, ErrInvalidPaymentMethod
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	identity, err := s.identity.Resolve(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	// An explicit status from the payment confirmation step is honored;
	// otherwise COD starts Pending and online payments are Paid.
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		if req.PaymentMethod == models.PaymentMethodCOD {
			paymentStatus = models.PaymentStatusPending
		} else {
			paymentStatus = models.PaymentStatusPaid
		}
	}

	orderID, err := s.ids.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}

	// Snapshot the cart. The order owns its copy; later cart mutations must
	// never reach a placed order.
	items := make([]models.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = models.OrderItem{
			ProductID: item.ProductID,
			Image:     item.Image,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Status:    models.OrderStatusPending,
		}
	}

	var transactionID *string
	if req.TransactionID != "" {
		transactionID = &req.TransactionID
	}

	var details *models.PaymentDetails
	if req.PaymentMethod == models.PaymentMethodOnline && (req.CardNumber != "" || req.Expiry != "") {
		details = &models.PaymentDetails{CardNumber: req.CardNumber, Expiry: req.Expiry}
	}

	order := &models.Order{
		OrderID:        orderID,
		Username:       identity.Username,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  paymentStatus,
		TransactionID:  transactionID,
		PaymentDetails: details,
		Items:          items,
		Status:         models.OrderStatusPending,
		Total:          cart.Total(),
		CreatedAt:      time.Now(),
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	// Best-effort confirmation: spawned, logged on failure, never awaited.
	go s.sendConfirmation(order)

	return &PlaceOrderResult{OrderID: orderID, TransactionID: transactionID}, nil
}

func (s *CheckoutService) sendConfirmation(order *models.Order) {
	if err := s.mailer.SendOrderConfirmation(order.Email, order); err != nil {
		s.logger.Warn("order confirmation email failed",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}
}
