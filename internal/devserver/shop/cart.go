package shop

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/common"
)

// Cart returns the shopper's cart with product snapshots populated.
func (s *Shop) Cart(_ context.Context, userID string) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[userID]
	out := make([]models.CartItem, len(items))
	for i, it := range items {
		out[i] = s.populateCartItem(it)
	}
	return out
}

// AddToCart adds quantity of a product. When the product is already in the
// cart the quantities are merged and the merged line is returned.
func (s *Shop) AddToCart(_ context.Context, userID, productID string, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.product(productID); err != nil {
		return models.CartItem{}, err
	}

	items := s.carts[userID]
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity += quantity
			return s.populateCartItem(items[i]), nil
		}
	}

	it := models.CartItem{ID: s.newID(), Product: models.RefID(productID), Quantity: quantity}
	s.carts[userID] = append(items, it)
	return s.populateCartItem(it), nil
}

// UpdateCartItem sets the quantity of one line.
func (s *Shop) UpdateCartItem(_ context.Context, userID, itemID string, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.cartIndex(userID, itemID)
	if err != nil {
		return models.CartItem{}, err
	}
	s.carts[userID][i].Quantity = quantity
	return s.populateCartItem(s.carts[userID][i]), nil
}

// RemoveCartItem deletes one line.
func (s *Shop) RemoveCartItem(_ context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.cartIndex(userID, itemID)
	if err != nil {
		return err
	}
	items := s.carts[userID]
	s.carts[userID] = append(items[:i], items[i+1:]...)
	return nil
}

// ClearCart empties the shopper's cart.
func (s *Shop) ClearCart(_ context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

func (s *Shop) cartIndex(userID, itemID string) (int, error) {
	for i, it := range s.carts[userID] {
		if it.ID == itemID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: cart item %s", common.ErrorNotFound, itemID)
}

func (s *Shop) populateCartItem(it models.CartItem) models.CartItem {
	it.Product = s.populate(it.Product.ID)
	return it
}

// populate returns a snapshot reference, or a bare id when the product has
// left the catalog.
func (s *Shop) populate(productID string) models.ProductRef {
	if p, ok := s.products[productID]; ok {
		return models.RefProduct(p.Clone())
	}
	return models.RefID(productID)
}
