package models

import (
	"fmt"
	"time"

	"poultryfarm/internal/domain"
)

// OrderStatus tracks fulfillment progress.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return OrderStatus(s), nil
	default:
		return "", fmt.Errorf("%w: order status %q", domain.ErrInvalidInput, s)
	}
}

// PaymentStatus tracks settlement of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ParsePaymentStatus validates a raw payment status value.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return PaymentStatus(s), nil
	default:
		return "", fmt.Errorf("%w: payment status %q", domain.ErrInvalidInput, s)
	}
}

// LineItem is one (product, quantity, price) tuple within an order.
// Price is the agreed unit price at order time, which may differ from
// the product's listed price.
type LineItem struct {
	ProductID string  `bson:"product_id" json:"productId" validate:"required"`
	Quantity  int     `bson:"quantity" json:"quantity" validate:"gt=0"`
	Price     float64 `bson:"price" json:"price" validate:"gte=0"`
}

// DeliveryInfo captures optional shipping details for an order.
type DeliveryInfo struct {
	Address string     `bson:"address" json:"address"`
	Notes   string     `bson:"notes,omitempty" json:"notes,omitempty"`
	DueDate *time.Time `bson:"due_date,omitempty" json:"dueDate,omitempty"`
}

// Order is a customer purchase. It is only ever persisted after every
// line item has been reconciled against product stock.
type Order struct {
	ID            string        `bson:"_id" json:"id"`
	FarmID        string        `bson:"farm_id" json:"farmId"`
	CustomerID    string        `bson:"customer_id" json:"customerId"`
	Products      []LineItem    `bson:"products" json:"products"`
	TotalAmount   float64       `bson:"total_amount" json:"totalAmount"`
	Status        OrderStatus   `bson:"status" json:"status"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"paymentStatus"`
	Delivery      *DeliveryInfo `bson:"delivery,omitempty" json:"delivery,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt     *time.Time    `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

func (o Order) Key() string { return o.ID }
