package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.shop.Cart(r.Context(), principalID(r.Context())))
}

// addToCart returns the inserted or merged line.
func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	var in models.AddToCart
	if err := decode(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.shop.AddToCart(r.Context(), principalID(r.Context()), in.ProductID, in.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var in models.QuantityUpdate
	if err := decode(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.shop.UpdateCartItem(r.Context(), principalID(r.Context()), chi.URLParam(r, "id"), in.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := s.shop.RemoveCartItem(r.Context(), principalID(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "item removed")
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.shop.ClearCart(r.Context(), principalID(r.Context()))
	writeMessage(w, http.StatusOK, "cart cleared")
}

func (s *Server) getWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.shop.Wishlist(r.Context(), principalID(r.Context())))
}

func (s *Server) addToWishlist(w http.ResponseWriter, r *http.Request) {
	var in models.AddToWishlist
	if err := decode(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.shop.AddToWishlist(r.Context(), principalID(r.Context()), in.ProductID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) removeFromWishlist(w http.ResponseWriter, r *http.Request) {
	if err := s.shop.RemoveFromWishlist(r.Context(), principalID(r.Context()), chi.URLParam(r, "productId")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "removed from wishlist")
}
