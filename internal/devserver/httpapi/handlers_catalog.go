package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.shop.Products(r.Context(), r.URL.Query().Get("type")))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.shop.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) rateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ReviewInput
	if err := decode(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.shop.Rate(r.Context(), principalID(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var c models.Contact
	if err := decode(w, r, &c); err != nil {
		s.writeError(w, r, err)
		return
	}

	saved, err := s.shop.SubmitContact(r.Context(), c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}
