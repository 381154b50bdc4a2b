package shop

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/common"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type account struct {
	principal models.Principal
	hash      []byte
}

// directory indexes accounts of one kind by id and by lower-cased email.
type directory struct {
	byID    map[string]*account
	byEmail map[string]string
}

func newDirectory() directory {
	return directory{byID: make(map[string]*account), byEmail: make(map[string]string)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(reg models.Registration, nameRequired bool) error {
	if nameRequired && strings.TrimSpace(reg.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(reg.Email)); err != nil {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(reg.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	return nil
}

func (s *Shop) register(d directory, reg models.Registration, nameRequired bool) (models.Principal, error) {
	if err := validateRegistration(reg, nameRequired); err != nil {
		return models.Principal{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.bcryptCost)
	if err != nil {
		return models.Principal{}, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(reg.Email)
	if _, taken := d.byEmail[email]; taken {
		return models.Principal{}, fmt.Errorf("%w: email %s is already registered", common.ErrorAlreadyExists, email)
	}

	acc := &account{
		principal: models.Principal{ID: s.newID(), Name: strings.TrimSpace(reg.Name), Email: email},
		hash:      hash,
	}
	d.byID[acc.principal.ID] = acc
	d.byEmail[email] = acc.principal.ID
	return acc.principal.Clone(), nil
}

func (s *Shop) authenticate(d directory, creds models.Credentials) (models.Principal, error) {
	s.mu.RLock()
	acc, ok := d.byID[d.byEmail[normalizeEmail(creds.Email)]]
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(creds.Password)) != nil {
		return models.Principal{}, fmt.Errorf("%w: invalid email or password", common.ErrorUnauthorized)
	}
	return acc.principal.Clone(), nil
}

// RegisterUser creates a shopper account.
func (s *Shop) RegisterUser(_ context.Context, reg models.Registration) (models.Principal, error) {
	return s.register(s.users, reg, true)
}

// AuthenticateUser checks shopper credentials.
func (s *Shop) AuthenticateUser(_ context.Context, creds models.Credentials) (models.Principal, error) {
	return s.authenticate(s.users, creds)
}

// RegisterAdmin creates an administrator account.
func (s *Shop) RegisterAdmin(_ context.Context, reg models.Registration) (models.Principal, error) {
	return s.register(s.admins, reg, false)
}

// AuthenticateAdmin checks administrator credentials.
func (s *Shop) AuthenticateAdmin(_ context.Context, creds models.Credentials) (models.Principal, error) {
	return s.authenticate(s.admins, creds)
}

// AdminExists reports whether id names an administrator.
func (s *Shop) AdminExists(_ context.Context, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins.byID[id]
	return ok
}

// Profile returns the shopper with the given id.
func (s *Shop) Profile(_ context.Context, userID string) (models.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, err := s.user(userID)
	if err != nil {
		return models.Principal{}, err
	}
	return acc.principal.Clone(), nil
}

func (s *Shop) user(userID string) (*account, error) {
	acc, ok := s.users.byID[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", common.ErrorNotFound, userID)
	}
	return acc, nil
}

// UpdateProfile overwrites the editable profile fields. Changing the email
// to one owned by another shopper fails with common.ErrorAlreadyExists.
func (s *Shop) UpdateProfile(_ context.Context, userID string, upd models.ProfileUpdate) (models.Principal, error) {
	if strings.TrimSpace(upd.Name) == "" {
		return models.Principal{}, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(upd.Email)); err != nil {
		return models.Principal{}, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.user(userID)
	if err != nil {
		return models.Principal{}, err
	}

	email := normalizeEmail(upd.Email)
	if owner, taken := s.users.byEmail[email]; taken && owner != userID {
		return models.Principal{}, fmt.Errorf("%w: email %s is already registered", common.ErrorAlreadyExists, email)
	}
	delete(s.users.byEmail, acc.principal.Email)
	s.users.byEmail[email] = userID

	acc.principal.Name = strings.TrimSpace(upd.Name)
	acc.principal.Email = email
	acc.principal.Phone = strings.TrimSpace(upd.Phone)
	acc.principal.ProfilePicture = strings.TrimSpace(upd.ProfilePicture)
	return acc.principal.Clone(), nil
}
