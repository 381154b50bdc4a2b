package models

import "fmt"

// CartItem is one line of the shopper's cart. While an optimistic insert is
// pending, ID holds a temporary client-generated identifier.
type CartItem struct {
	ID       string     `json:"_id"`
	Product  ProductRef `json:"productId"`
	Quantity int        `json:"quantity"`
}

func (c CartItem) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: cart item without _id", ErrInvalidPayload)
	}
	if c.Product.ID == "" {
		return fmt.Errorf("%w: cart item %s without productId", ErrInvalidPayload, c.ID)
	}
	if c.Quantity < 1 {
		return fmt.Errorf("%w: cart item %s has quantity %d", ErrInvalidPayload, c.ID, c.Quantity)
	}
	return nil
}

func (c CartItem) Clone() CartItem {
	c.Product = c.Product.clone()
	return c
}

// CartItems is the list payload of GET /cart.
type CartItems []CartItem

func (cs CartItems) Validate() error {
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddToCart is the body of POST /cart.
type AddToCart struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// QuantityUpdate is the body of PUT /cart/{id}.
type QuantityUpdate struct {
	Quantity int `json:"quantity"`
}

// WishlistItem is a saved product. It has no quantity.
type WishlistItem struct {
	ID      string     `json:"_id"`
	Product ProductRef `json:"productId"`
}

func (w WishlistItem) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("%w: wishlist item without _id", ErrInvalidPayload)
	}
	if w.Product.ID == "" {
		return fmt.Errorf("%w: wishlist item %s without productId", ErrInvalidPayload, w.ID)
	}
	return nil
}

func (w WishlistItem) Clone() WishlistItem {
	w.Product = w.Product.clone()
	return w
}

// WishlistItems is the list payload of GET /wishlist.
type WishlistItems []WishlistItem

func (ws WishlistItems) Validate() error {
	for _, w := range ws {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddToWishlist is the body of POST /wishlist.
type AddToWishlist struct {
	ProductID string `json:"productId"`
}
