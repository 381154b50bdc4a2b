package stores

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

type OrdersSnapshot struct {
	Orders    []models.Order
	Status    Status
	LastError string
}

// Order finds an order by id.
func (o OrdersSnapshot) Order(id string) (models.Order, bool) {
	for _, ord := range o.Orders {
		if ord.ID == id {
			return ord, true
		}
	}
	return models.Order{}, false
}

// OrderStore mirrors the shopper's order history, newest first.
type OrderStore struct {
	mu     sync.RWMutex
	orders []models.Order
	tracker

	api client.Requester
	log logging.Logger
}

func NewOrderStore(api client.Requester, log logging.Logger) *OrderStore {
	return &OrderStore{api: api, log: log.With("store", "orders")}
}

func (s *OrderStore) Snapshot() OrdersSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return OrdersSnapshot{Orders: cloneOrders(s.orders), Status: s.status, LastError: s.lastErr}
}

func (s *OrderStore) FetchAll(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var orders models.Orders
	err := s.api.Do(ctx, client.Get(credentials.ScopeUser, "/orders"), &orders)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "orders.fetch", err)
		return nil, err
	}
	s.orders = cloneOrders(orders)
	sortNewestFirst(s.orders)
	s.succeed()
	return cloneOrders(s.orders), nil
}

// Place submits an order. Emptying the cart afterwards is the caller's job.
func (s *OrderStore) Place(ctx context.Context, order models.PlaceOrder) (models.Order, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var placed models.Order
	err := s.api.Do(ctx, client.Post(credentials.ScopeUser, "/orders", order), &placed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "orders.place", err)
		return models.Order{}, err
	}
	s.orders = append(s.orders, placed.Clone())
	sortNewestFirst(s.orders)
	s.succeed()
	s.log.Debug(ctx, "order placed", "order", placed.ID, "total", placed.TotalAmount)
	return placed.Clone(), nil
}

// Cancel cancels a pending order. The local status changes only after the
// backend confirms.
func (s *OrderStore) Cancel(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	if i := indexOrder(s.orders, orderID); i >= 0 && s.orders[i].Status != models.OrderPending {
		s.fail(ErrNotCancellable)
		s.mu.Unlock()
		logFailure(ctx, s.log, "orders.cancel", ErrNotCancellable)
		return ErrNotCancellable
	}
	s.begin()
	s.mu.Unlock()

	err := s.api.Do(ctx, client.Put(credentials.ScopeUser, client.Path("orders", orderID, "cancel"), struct{}{}), nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "orders.cancel", err)
		return err
	}
	if i := indexOrder(s.orders, orderID); i >= 0 {
		s.orders[i].Status = models.OrderCancelled
	}
	s.succeed()
	return nil
}

func (s *OrderStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
	s.reset()
}

func indexOrder(orders []models.Order, id string) int {
	return slices.IndexFunc(orders, func(o models.Order) bool { return o.ID == id })
}

func sortNewestFirst(orders []models.Order) {
	slices.SortStableFunc(orders, func(a, b models.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

func cloneOrders(orders []models.Order) []models.Order {
	if orders == nil {
		return nil
	}
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
