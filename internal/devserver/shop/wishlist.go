package shop

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/common"
)

// Wishlist returns the shopper's saved products.
func (s *Shop) Wishlist(_ context.Context, userID string) []models.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.wishlists[userID]
	out := make([]models.WishlistItem, len(items))
	for i, it := range items {
		it.Product = s.populate(it.Product.ID)
		out[i] = it
	}
	return out
}

// AddToWishlist saves a product. Saving it twice returns the existing entry.
func (s *Shop) AddToWishlist(_ context.Context, userID, productID string) (models.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.product(productID); err != nil {
		return models.WishlistItem{}, err
	}

	for _, it := range s.wishlists[userID] {
		if it.Product.ID == productID {
			it.Product = s.populate(productID)
			return it, nil
		}
	}

	it := models.WishlistItem{ID: s.newID(), Product: models.RefID(productID)}
	s.wishlists[userID] = append(s.wishlists[userID], it)
	it.Product = s.populate(productID)
	return it, nil
}

// RemoveFromWishlist drops the entry for productID.
func (s *Shop) RemoveFromWishlist(_ context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.wishlists[userID]
	for i, it := range items {
		if it.Product.ID == productID {
			s.wishlists[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: product %s is not in the wishlist", common.ErrorNotFound, productID)
}
