package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPlaced     OrderStatus = "placed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPlaced, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// ActivityDateLayout formats order dates in activity feeds.
const ActivityDateLayout = "Jan 2, 2006"

// Order is a placed checkout of cart items.
type Order struct {
	ID     string          `json:"id"`
	Items  []CartItem      `json:"items"`
	Total  decimal.Decimal `json:"total"`
	Status OrderStatus     `json:"status"`
	Date   time.Time       `json:"date"`
}

// NewOrder builds a processing order from items, stamped with now.
func NewOrder(items []CartItem, now time.Time) (*Order, error) {
	total := decimal.Zero
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("order item %q: %w", item.ID, err)
		}
		total = total.Add(item.Subtotal())
	}
	copied := make([]CartItem, len(items))
	copy(copied, items)
	return &Order{
		ID:     uuid.NewString(),
		Items:  copied,
		Total:  total,
		Status: OrderProcessing,
		Date:   now.UTC(),
	}, nil
}

// Validate checks the order's identity and status.
func (o *Order) Validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if !o.Status.Valid() {
		return ErrInvalidOrderStatus
	}
	return nil
}

// Activity is one line of a user's recent activity feed.
type Activity struct {
	Action  string `json:"action"`
	Time    string `json:"time"`
	Status  string `json:"status"`
	OrderID string `json:"orderId"`
}

// Activity describes the order as a feed entry.
func (o *Order) Activity() Activity {
	var action string
	switch o.Status {
	case OrderDelivered:
		action = "Order Delivered"
	case OrderShipped:
		action = "Order Shipped"
	case OrderProcessing:
		action = "Order Processing"
	default:
		action = "Order Placed"
	}

	status := "In Progress"
	switch o.Status {
	case OrderDelivered:
		status = "Delivered"
	case OrderCancelled:
		status = "Cancelled"
	}

	when := "Recently"
	if !o.Date.IsZero() {
		when = o.Date.Format(ActivityDateLayout)
	}

	return Activity{Action: action, Time: when, Status: status, OrderID: o.ID}
}
