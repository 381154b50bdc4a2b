package stores

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

type ContactsSnapshot struct {
	Contacts  []models.Contact
	Status    Status
	LastError string
}

// AdminContactStore mirrors the contact-form inbox. It is read only.
type AdminContactStore struct {
	mu       sync.RWMutex
	contacts []models.Contact
	tracker

	api client.Requester
	log logging.Logger
}

func NewAdminContactStore(api client.Requester, log logging.Logger) *AdminContactStore {
	return &AdminContactStore{api: api, log: log.With("store", "admin_contacts")}
}

func (s *AdminContactStore) Snapshot() ContactsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ContactsSnapshot{Contacts: append([]models.Contact(nil), s.contacts...), Status: s.status, LastError: s.lastErr}
}

func (s *AdminContactStore) FetchAll(ctx context.Context) ([]models.Contact, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var contacts models.Contacts
	err := s.api.Do(ctx, client.Get(credentials.ScopeAdmin, "/admin/contacts"), &contacts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		logFailure(ctx, s.log, "admin.contacts.fetch", err)
		return nil, err
	}
	s.contacts = append([]models.Contact(nil), contacts...)
	s.succeed()
	return append([]models.Contact(nil), contacts...), nil
}

func (s *AdminContactStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = nil
	s.reset()
}
