package shop

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/common"
)

// DefaultPaymentMethod is used when an order names none.
const DefaultPaymentMethod = "Cash on Delivery"

// PlaceOrder records an order for the shopper. Line prices and the total are
// recomputed from the catalog; the cart is left alone.
func (s *Shop) PlaceOrder(_ context.Context, userID string, in models.PlaceOrder) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, fmt.Errorf("%w: order has no items", common.ErrorValidation)
	}
	if err := validateAddress(in.Address); err != nil {
		return models.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.user(userID); err != nil {
		return models.Order{}, err
	}

	lines := make([]models.OrderLine, 0, len(in.Items))
	total := 0.0
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return models.Order{}, fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
		}
		p, err := s.product(it.Product.ID)
		if err != nil {
			return models.Order{}, err
		}
		lines = append(lines, models.OrderLine{Product: models.RefID(p.ID), Quantity: it.Quantity, Price: p.Price})
		total += p.Price * float64(it.Quantity)
	}

	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = DefaultPaymentMethod
	}

	o := &models.Order{
		ID:            s.newID(),
		UserID:        userID,
		Items:         lines,
		TotalAmount:   math.Round(total*100) / 100,
		Address:       in.Address,
		PaymentMethod: payment,
		Status:        models.OrderPending,
		CreatedAt:     s.now(),
	}
	s.orders = append(s.orders, o)
	return s.populateOrder(o), nil
}

// Orders lists the shopper's orders, newest first.
func (s *Shop) Orders(_ context.Context, userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, s.populateOrder(s.orders[i]))
		}
	}
	return out
}

// CancelOrder cancels a pending order of the shopper. Orders past Pending
// fail with common.ErrorConflict.
func (s *Shop) CancelOrder(_ context.Context, userID, orderID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.order(orderID)
	if err != nil || o.UserID != userID {
		return models.Order{}, fmt.Errorf("%w: order %s", common.ErrorNotFound, orderID)
	}
	if o.Status != models.OrderPending {
		return models.Order{}, fmt.Errorf("%w: order %s is %s", common.ErrorConflict, orderID, o.Status)
	}
	o.Status = models.OrderCancelled
	return s.populateOrder(o), nil
}

// AllOrders lists every order, newest first.
func (s *Shop) AllOrders(_ context.Context) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		out = append(out, s.populateOrder(s.orders[i]))
	}
	return out
}

// SetOrderStatus moves an order to status. Unknown statuses fail with
// common.ErrorValidation; orders that are Delivered or Cancelled accept no
// further change and fail with common.ErrorConflict.
func (s *Shop) SetOrderStatus(_ context.Context, orderID string, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.order(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if o.Status.Terminal() {
		return models.Order{}, fmt.Errorf("%w: order %s is already %s", common.ErrorConflict, orderID, o.Status)
	}
	o.Status = status
	return s.populateOrder(o), nil
}

func (s *Shop) order(orderID string) (*models.Order, error) {
	for _, o := range s.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: order %s", common.ErrorNotFound, orderID)
}

func (s *Shop) populateOrder(o *models.Order) models.Order {
	out := o.Clone()
	for i := range out.Items {
		out.Items[i].Product = s.populate(out.Items[i].Product.ID)
	}
	return out
}
