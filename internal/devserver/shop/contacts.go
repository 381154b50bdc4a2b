package shop

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/common"
)

// SubmitContact stores a message from the public contact form.
func (s *Shop) SubmitContact(_ context.Context, c models.Contact) (models.Contact, error) {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Message) == "" {
		return models.Contact{}, fmt.Errorf("%w: name and message are required", common.ErrorValidation)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(c.Email)); err != nil {
		return models.Contact{}, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.newID()
	c.Email = normalizeEmail(c.Email)
	c.CreatedAt = s.now()
	s.contacts = append(s.contacts, c)
	return c, nil
}

// Contacts lists contact messages, newest first.
func (s *Shop) Contacts(_ context.Context) []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Contact, 0, len(s.contacts))
	for i := len(s.contacts) - 1; i >= 0; i-- {
		out = append(out, s.contacts[i])
	}
	return out
}
