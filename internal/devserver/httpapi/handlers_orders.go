package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders := s.shop.Orders(r.Context(), principalID(r.Context()))
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var in models.PlaceOrder
	if err := decode(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	o, err := s.shop.PlaceOrder(r.Context(), principalID(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.shop.CancelOrder(r.Context(), principalID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) listAllOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.shop.AllOrders(r.Context()))
}

func (s *Server) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in models.StatusUpdate
	if err := decode(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	o, err := s.shop.SetOrderStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.shop.Contacts(r.Context()))
}
