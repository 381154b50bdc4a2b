package stores

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

// AdminOrderStore mirrors every customer's orders for the admin panel.
type AdminOrderStore struct {
	mu     sync.RWMutex
	orders []models.Order
	tracker

	api client.Requester
	log logging.Logger
}

func NewAdminOrderStore(api client.Requester, log logging.Logger) *AdminOrderStore {
	return &AdminOrderStore{api: api, log: log.With("store", "admin_orders")}
}

func (s *AdminOrderStore) Snapshot() OrdersSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return OrdersSnapshot{Orders: cloneOrders(s.orders), Status: s.status, LastError: s.lastErr}
}

func (s *AdminOrderStore) FetchAll(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var orders models.Orders
	err := s.api.Do(ctx, client.Get(credentials.ScopeAdmin, "/admin/orders"), &orders)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "admin.orders.fetch", err)
		return nil, err
	}
	s.orders = cloneOrders(orders)
	s.succeed()
	return cloneOrders(orders), nil
}

// UpdateStatus moves an order to status. Values outside the status set fail
// with ErrInvalidStatus and orders already Delivered or Cancelled with
// ErrTerminalStatus, neither reaching the backend. The local entry is
// replaced only by the record the backend returns.
func (s *AdminOrderStore) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return models.Order{}, ErrMissingID
	}
	if !status.Valid() {
		return models.Order{}, ErrInvalidStatus
	}

	s.mu.Lock()
	if i := indexOrder(s.orders, orderID); i >= 0 && s.orders[i].Status.Terminal() {
		s.fail(ErrTerminalStatus)
		s.mu.Unlock()
		logFailure(ctx, s.log, "admin.orders.status", ErrTerminalStatus)
		return models.Order{}, ErrTerminalStatus
	}
	s.begin()
	s.mu.Unlock()

	var updated models.Order
	err := s.api.Do(ctx, client.Put(credentials.ScopeAdmin, client.Path("admin", "orders", orderID), models.StatusUpdate{
		Status: status,
	}), &updated)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "admin.orders.status", err)
		return models.Order{}, err
	}
	if i := indexOrder(s.orders, updated.ID); i >= 0 {
		s.orders[i] = updated.Clone()
	}
	s.succeed()
	s.log.Debug(ctx, "order status updated", "order", updated.ID, "status", updated.Status)
	return updated.Clone(), nil
}

func (s *AdminOrderStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
	s.reset()
}
