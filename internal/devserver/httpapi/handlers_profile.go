package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.shop.Profile(r.Context(), principalID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := decode(w, r, &upd); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondProfile(w, r)(s.shop.UpdateProfile(r.Context(), principalID(r.Context()), upd))
}

func (s *Server) addAddress(w http.ResponseWriter, r *http.Request) {
	var addr models.Address
	if err := decode(w, r, &addr); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondProfile(w, r)(s.shop.AddAddress(r.Context(), principalID(r.Context()), addr))
}

func (s *Server) updateAddress(w http.ResponseWriter, r *http.Request) {
	var addr models.Address
	if err := decode(w, r, &addr); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondProfile(w, r)(s.shop.UpdateAddress(r.Context(), principalID(r.Context()), chi.URLParam(r, "id"), addr))
}

func (s *Server) deleteAddress(w http.ResponseWriter, r *http.Request) {
	s.respondProfile(w, r)(s.shop.DeleteAddress(r.Context(), principalID(r.Context()), chi.URLParam(r, "id")))
}

func (s *Server) setDefaultAddress(w http.ResponseWriter, r *http.Request) {
	s.respondProfile(w, r)(s.shop.SetDefaultAddress(r.Context(), principalID(r.Context()), chi.URLParam(r, "id")))
}

func (s *Server) respondProfile(w http.ResponseWriter, r *http.Request) func(models.Principal, error) {
	return func(p models.Principal, err error) {
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
