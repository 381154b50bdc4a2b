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

// CartSnapshot is a copy of the cart's state.
type CartSnapshot struct {
	Items     []models.CartItem
	Status    Status
	LastError string
}

// Subtotal sums price times quantity over items whose product snapshot is
// known.
func (c CartSnapshot) Subtotal() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Product.Price() * float64(it.Quantity)
	}
	return total
}

// Count is the number of units in the cart.
func (c CartSnapshot) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Item finds a line by its identifier.
func (c CartSnapshot) Item(id string) (models.CartItem, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return models.CartItem{}, false
}

// CartStore mirrors the shopper's cart and coordinates optimistic changes.
type CartStore struct {
	mu    sync.RWMutex
	items []models.CartItem
	tracker

	api      client.Requester
	log      logging.Logger
	ids      *TempIDs
	rollback bool
}

type CartOption func(*CartStore)

// WithRollbackOnFailure reverts an optimistic add or quantity change when the
// backend rejects it. Without it the optimistic state stays until the next
// FetchAll.
func WithRollbackOnFailure() CartOption {
	return func(s *CartStore) { s.rollback = true }
}

// WithTempIDs sets the temporary identifier generator.
func WithTempIDs(ids *TempIDs) CartOption {
	return func(s *CartStore) { s.ids = ids }
}

func NewCartStore(api client.Requester, log logging.Logger, opts ...CartOption) *CartStore {
	s := &CartStore{
		api: api,
		log: log.With("store", "cart"),
		ids: NewTempIDs(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CartStore) Snapshot() CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CartSnapshot{Items: cloneCart(s.items), Status: s.status, LastError: s.lastErr}
}

// AddItem puts quantity units of productID into the cart. The local cart
// changes before the request is sent: an existing line for the product is
// incremented, otherwise a line with a temporary id is appended. When the
// backend answers, that line is replaced by the server's record.
func (s *CartStore) AddItem(ctx context.Context, productID string, quantity int) (models.CartItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return models.CartItem{}, ErrMissingID
	}
	if quantity < 1 {
		return models.CartItem{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	var (
		merged *mergedAdd
		tempID string
	)
	if i := s.indexByProduct(productID); i >= 0 {
		merged = &mergedAdd{lineID: s.items[i].ID, before: s.items[i].Quantity}
		s.items[i].Quantity += quantity
		merged.after = s.items[i].Quantity
	} else {
		tempID = s.ids.Next()
		s.items = append(s.items, models.CartItem{
			ID:       tempID,
			Product:  models.RefID(productID),
			Quantity: quantity,
		})
	}
	s.begin()
	s.mu.Unlock()

	var confirmed models.CartItem
	err := s.api.Do(ctx, client.Post(credentials.ScopeUser, "/cart", models.AddToCart{
		ProductID: productID,
		Quantity:  quantity,
	}), &confirmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.rollback {
			s.revertAdd(tempID, merged)
		}
		s.fail(err)
		logFailure(ctx, s.log, "cart.add", err)
		return models.CartItem{}, err
	}

	var i int
	if merged != nil {
		i = s.indexByProduct(productID)
	} else {
		i = s.indexByID(tempID)
	}
	if i < 0 {
		s.log.Debug(ctx, "discarding add confirmation for a line that is gone", "product", productID, "item", confirmed.ID)
		s.succeed()
		return confirmed.Clone(), nil
	}

	s.replace(i, confirmed)
	s.succeed()
	s.log.Debug(ctx, "cart line confirmed", "product", productID, "item", confirmed.ID, "quantity", confirmed.Quantity)
	return confirmed.Clone(), nil
}

// replace swaps the line at i for the server's record. If another line
// already carries the record's id or product, that line is updated and the
// one at i dropped so each product appears once.
func (s *CartStore) replace(i int, confirmed models.CartItem) {
	if confirmed.Product.Product == nil && s.items[i].Product.Product != nil {
		confirmed.Product = s.items[i].Product
	}
	for j := range s.items {
		if j == i {
			continue
		}
		if s.items[j].ID == confirmed.ID || s.items[j].Product.ID == confirmed.Product.ID {
			if confirmed.Product.Product == nil {
				confirmed.Product = s.items[j].Product
			}
			s.items[j] = confirmed.Clone()
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
	s.items[i] = confirmed.Clone()
}

// mergedAdd remembers the line an optimistic add was merged into.
type mergedAdd struct {
	lineID        string
	before, after int
}

// revertAdd undoes a failed optimistic add. A merged line is restored only
// while it still holds the optimistic quantity under the same id; once a
// server record has replaced it the line is left alone.
func (s *CartStore) revertAdd(tempID string, merged *mergedAdd) {
	if merged == nil {
		if i := s.indexByID(tempID); i >= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		return
	}
	if i := s.indexByID(merged.lineID); i >= 0 && s.items[i].Quantity == merged.after {
		s.items[i].Quantity = merged.before
	}
}

// RemoveItem deletes a line. The local cart changes only after the backend
// confirms.
func (s *CartStore) RemoveItem(ctx context.Context, itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return ErrMissingID
	}
	if IsTempID(itemID) {
		s.reject(ctx, "cart.remove", ErrItemPending)
		return ErrItemPending
	}

	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	err := s.api.Do(ctx, client.Delete(credentials.ScopeUser, client.Path("cart", itemID)), nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "cart.remove", err)
		return err
	}
	if i := s.indexByID(itemID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	s.succeed()
	return nil
}

// UpdateQuantity sets a line's quantity. Values below 1 are rejected without
// touching state. The new value is shown immediately and replaced with the
// server's record on success.
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID string, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, ErrInvalidQuantity
	}
	if strings.TrimSpace(itemID) == "" {
		return models.CartItem{}, ErrMissingID
	}
	if IsTempID(itemID) {
		s.reject(ctx, "cart.quantity", ErrItemPending)
		return models.CartItem{}, ErrItemPending
	}

	s.mu.Lock()
	previous := 0
	if i := s.indexByID(itemID); i >= 0 {
		previous = s.items[i].Quantity
		s.items[i].Quantity = quantity
	}
	s.begin()
	s.mu.Unlock()

	var confirmed models.CartItem
	err := s.api.Do(ctx, client.Put(credentials.ScopeUser, client.Path("cart", itemID), models.QuantityUpdate{
		Quantity: quantity,
	}), &confirmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.rollback && previous > 0 {
			if i := s.indexByID(itemID); i >= 0 && s.items[i].Quantity == quantity {
				s.items[i].Quantity = previous
			}
		}
		s.fail(err)
		logFailure(ctx, s.log, "cart.quantity", err)
		return models.CartItem{}, err
	}

	if i := s.indexByID(itemID); i >= 0 {
		s.replace(i, confirmed)
	}
	s.succeed()
	return confirmed.Clone(), nil
}

// Clear empties the cart once the backend confirms.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	err := s.api.Do(ctx, client.Delete(credentials.ScopeUser, "/cart"), nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "cart.clear", err)
		return err
	}
	s.items = nil
	s.succeed()
	return nil
}

// FetchAll replaces the local cart with the server's. It is the recovery
// path for any drift left by failed optimistic changes.
func (s *CartStore) FetchAll(ctx context.Context) ([]models.CartItem, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var items models.CartItems
	err := s.api.Do(ctx, client.Get(credentials.ScopeUser, "/cart"), &items)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "cart.fetch", err)
		return nil, err
	}
	s.items = cloneCart(items)
	s.succeed()
	return cloneCart(items), nil
}

// reject records a failure decided locally, before any request is sent.
func (s *CartStore) reject(ctx context.Context, op string, err error) {
	s.mu.Lock()
	s.fail(err)
	s.mu.Unlock()
	logFailure(ctx, s.log, op, err)
}

// Reset drops local state without contacting the backend.
func (s *CartStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.reset()
}

func (s *CartStore) indexByID(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *CartStore) indexByProduct(productID string) int {
	for i, it := range s.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

func cloneCart(items []models.CartItem) []models.CartItem {
	if items == nil {
		return nil
	}
	out := make([]models.CartItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
