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

type WishlistSnapshot struct {
	Items     []models.WishlistItem
	Status    Status
	LastError string
}

// Contains reports whether productID is on the wishlist.
func (w WishlistSnapshot) Contains(productID string) bool {
	for _, it := range w.Items {
		if it.Product.ID == productID {
			return true
		}
	}
	return false
}

// WishlistStore mirrors the saved-products list. Nothing here is optimistic.
type WishlistStore struct {
	mu    sync.RWMutex
	items []models.WishlistItem
	tracker

	api client.Requester
	log logging.Logger
}

func NewWishlistStore(api client.Requester, log logging.Logger) *WishlistStore {
	return &WishlistStore{api: api, log: log.With("store", "wishlist")}
}

func (s *WishlistStore) Snapshot() WishlistSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return WishlistSnapshot{Items: cloneWishlist(s.items), Status: s.status, LastError: s.lastErr}
}

func (s *WishlistStore) FetchAll(ctx context.Context) ([]models.WishlistItem, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var items models.WishlistItems
	err := s.api.Do(ctx, client.Get(credentials.ScopeUser, "/wishlist"), &items)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "wishlist.fetch", err)
		return nil, err
	}
	s.items = cloneWishlist(items)
	s.succeed()
	return cloneWishlist(items), nil
}

// AddItem saves productID. Duplicates are for the backend to reject; a
// confirmed record whose id is already present replaces it.
func (s *WishlistStore) AddItem(ctx context.Context, productID string) (models.WishlistItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return models.WishlistItem{}, ErrMissingID
	}

	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var item models.WishlistItem
	err := s.api.Do(ctx, client.Post(credentials.ScopeUser, "/wishlist", models.AddToWishlist{ProductID: productID}), &item)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "wishlist.add", err)
		return models.WishlistItem{}, err
	}
	replaced := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, item.Clone())
	}
	s.succeed()
	return item.Clone(), nil
}

// RemoveItem unsaves productID once the backend confirms.
func (s *WishlistStore) RemoveItem(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	err := s.api.Do(ctx, client.Delete(credentials.ScopeUser, client.Path("wishlist", productID)), nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "wishlist.remove", err)
		return err
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if it.Product.ID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.succeed()
	return nil
}

func (s *WishlistStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.reset()
}

func cloneWishlist(items []models.WishlistItem) []models.WishlistItem {
	if items == nil {
		return nil
	}
	out := make([]models.WishlistItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
