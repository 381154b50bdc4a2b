package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// Valid reports whether s is one of OrderStatuses.
func (s OrderStatus) Valid() bool {
	return slices.Contains(OrderStatuses, s)
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// ParseOrderStatus matches s case-insensitively against OrderStatuses.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Order is a placed order as the backend reports it.
type Order struct {
	ID            string      `json:"_id"`
	UserID        string      `json:"userId,omitempty"`
	Items         []OrderLine `json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	Address       Address     `json:"address"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func (o Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("%w: order without _id", ErrInvalidPayload)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: order %s has unknown status %q", ErrInvalidPayload, o.ID, o.Status)
	}
	return nil
}

func (o Order) Clone() Order {
	items := make([]OrderLine, len(o.Items))
	for i, it := range o.Items {
		it.Product = it.Product.clone()
		items[i] = it
	}
	o.Items = items
	return o
}

// OrderLine is one product line of an order.
type OrderLine struct {
	Product  ProductRef `json:"productId"`
	Quantity int        `json:"quantity"`
	Price    float64    `json:"price"`
}

// Orders is the list payload of GET /orders and GET /admin/orders.
type Orders []Order

func (orders Orders) Validate() error {
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PlaceOrder is the body of POST /orders.
type PlaceOrder struct {
	Items         []OrderLine `json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	Address       Address     `json:"address"`
	PaymentMethod string      `json:"paymentMethod"`
}

// StatusUpdate is the body of PUT /admin/orders/{id}.
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Contact) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: contact without _id", ErrInvalidPayload)
	}
	return nil
}

// Contacts is the list payload of GET /admin/contacts.
type Contacts []Contact

func (cs Contacts) Validate() error {
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
