package shop

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/common"
)

func validateAddress(a models.Address) error {
	if strings.TrimSpace(a.FullName) == "" || strings.TrimSpace(a.AddressLine) == "" || strings.TrimSpace(a.City) == "" {
		return fmt.Errorf("%w: full name, address line and city are required", common.ErrorValidation)
	}
	return nil
}

// AddAddress appends an address to the shopper's profile. The first address,
// or one flagged IsDefault, becomes the default.
func (s *Shop) AddAddress(_ context.Context, userID string, addr models.Address) (models.Principal, error) {
	if err := validateAddress(addr); err != nil {
		return models.Principal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.user(userID)
	if err != nil {
		return models.Principal{}, err
	}

	addr.ID = s.newID()
	p := &acc.principal
	if len(p.Addresses) == 0 {
		addr.IsDefault = true
	}
	p.Addresses = append(p.Addresses, addr)
	if addr.IsDefault {
		markDefault(p, addr.ID)
	}
	return p.Clone(), nil
}

// UpdateAddress replaces the address with the given id.
func (s *Shop) UpdateAddress(_ context.Context, userID, addressID string, addr models.Address) (models.Principal, error) {
	if err := validateAddress(addr); err != nil {
		return models.Principal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, i, err := s.address(userID, addressID)
	if err != nil {
		return models.Principal{}, err
	}

	p := &acc.principal
	wasDefault := p.Addresses[i].IsDefault
	addr.ID = addressID
	addr.IsDefault = addr.IsDefault || wasDefault
	p.Addresses[i] = addr
	if addr.IsDefault {
		markDefault(p, addressID)
	}
	return p.Clone(), nil
}

// DeleteAddress removes an address. When it was the default, the first
// remaining address takes over.
func (s *Shop) DeleteAddress(_ context.Context, userID, addressID string) (models.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, i, err := s.address(userID, addressID)
	if err != nil {
		return models.Principal{}, err
	}

	p := &acc.principal
	wasDefault := p.Addresses[i].IsDefault
	p.Addresses = append(p.Addresses[:i], p.Addresses[i+1:]...)
	if wasDefault && len(p.Addresses) > 0 {
		markDefault(p, p.Addresses[0].ID)
	}
	return p.Clone(), nil
}

// SetDefaultAddress flags one address as default and clears the others.
func (s *Shop) SetDefaultAddress(_ context.Context, userID, addressID string) (models.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, _, err := s.address(userID, addressID)
	if err != nil {
		return models.Principal{}, err
	}
	markDefault(&acc.principal, addressID)
	return acc.principal.Clone(), nil
}

func (s *Shop) address(userID, addressID string) (*account, int, error) {
	acc, err := s.user(userID)
	if err != nil {
		return nil, -1, err
	}
	for i, a := range acc.principal.Addresses {
		if a.ID == addressID {
			return acc, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: address %s", common.ErrorNotFound, addressID)
}

func markDefault(p *models.Principal, addressID string) {
	for i := range p.Addresses {
		p.Addresses[i].IsDefault = p.Addresses[i].ID == addressID
	}
}
