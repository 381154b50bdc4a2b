package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/devserver/auth"
)

type userAuthResponse struct {
	Token string           `json:"token"`
	User  models.Principal `json:"user"`
}

type adminAuthResponse struct {
	Token string           `json:"token,omitempty"`
	Admin models.Principal `json:"admin"`
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decode(w, r, &reg); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.shop.RegisterUser(r.Context(), reg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.issueUserToken(w, r, http.StatusCreated, p)
}

func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decode(w, r, &creds); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.shop.AuthenticateUser(r.Context(), creds)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.issueUserToken(w, r, http.StatusOK, p)
}

func (s *Server) issueUserToken(w http.ResponseWriter, r *http.Request, status int, p models.Principal) {
	token, err := auth.GenerateToken(p.ID, auth.RoleUser, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, userAuthResponse{Token: token, User: p})
}

// signupAdmin creates an administrator but does not log it in.
func (s *Server) signupAdmin(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decode(w, r, &reg); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.shop.RegisterAdmin(r.Context(), reg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, adminAuthResponse{Admin: p})
}

func (s *Server) loginAdmin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decode(w, r, &creds); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.shop.AuthenticateAdmin(r.Context(), creds)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(p.ID, auth.RoleAdmin, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adminAuthResponse{Token: token, Admin: p})
}
