package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment methods accepted at checkout. The wire strings carry spaces to
// stay compatible with existing clients.
const (
	PaymentMethodCOD    = "Cash On Delivery"
	PaymentMethodOnline = "Online Payment"
)

// Payment statuses.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusApproved  OrderStatus = "Approved"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the recognized order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a cart line frozen into an order snapshot. Each item carries
// its own status so a cancelled order marks every line Cancelled.
type OrderItem struct {
	ProductID string      `bson:"product_id" json:"productId"`
	Image     string      `bson:"image" json:"image"`
	Title     string      `bson:"title" json:"title"`
	Price     float64     `bson:"price" json:"price"`
	Quantity  int         `bson:"quantity" json:"quantity"`
	Status    OrderStatus `bson:"status" json:"status"`
}

// PaymentDetails holds card metadata for online payments. Nil for COD.
type PaymentDetails struct {
	CardNumber string `bson:"card_number,omitempty" json:"cardNumber,omitempty"`
	Expiry     string `bson:"expiry,omitempty" json:"expiry,omitempty"`
}

// Order is a placed order. Items is an immutable snapshot of the cart at
// placement time; Total is computed once from that snapshot and never
// recomputed from live prices.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID        string             `bson:"order_id" json:"orderId"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        string             `bson:"address" json:"address"`
	PaymentMethod  string             `bson:"payment_method" json:"paymentMethod"`
	PaymentStatus  string             `bson:"payment_status" json:"paymentStatus"`
	TransactionID  *string            `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	PaymentDetails *PaymentDetails    `bson:"payment_details,omitempty" json:"paymentDetails,omitempty"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Status         OrderStatus        `bson:"status" json:"status"`
	CancelReason   string             `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"`
	Total          float64            `bson:"total" json:"total"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
