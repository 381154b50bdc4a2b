package stores

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
)

// UpdateProfile saves the shopper's contact details.
func (s *Session) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.Principal, error) {
	return s.mutateProfile(ctx, "profile.update", client.Put(s.ep.scope, s.ep.profile, upd))
}

// AddAddress appends a delivery address.
func (s *Session) AddAddress(ctx context.Context, addr models.Address) (models.Principal, error) {
	addr.ID = ""
	return s.mutateProfile(ctx, "profile.address.add", client.Post(s.ep.scope, s.ep.profile+"/addresses", addr))
}

// UpdateAddress replaces the address with id.
func (s *Session) UpdateAddress(ctx context.Context, id string, addr models.Address) (models.Principal, error) {
	if strings.TrimSpace(id) == "" {
		return models.Principal{}, ErrMissingID
	}
	addr.ID = id
	return s.mutateProfile(ctx, "profile.address.update", client.Put(s.ep.scope, s.addressPath(id), addr))
}

func (s *Session) DeleteAddress(ctx context.Context, id string) (models.Principal, error) {
	if strings.TrimSpace(id) == "" {
		return models.Principal{}, ErrMissingID
	}
	return s.mutateProfile(ctx, "profile.address.delete", client.Delete(s.ep.scope, s.addressPath(id)))
}

func (s *Session) SetDefaultAddress(ctx context.Context, id string) (models.Principal, error) {
	if strings.TrimSpace(id) == "" {
		return models.Principal{}, ErrMissingID
	}
	return s.mutateProfile(ctx, "profile.address.default", client.Put(s.ep.scope, s.addressPath(id)+"/default", nil))
}

func (s *Session) addressPath(id string) string {
	return s.ep.profile + client.Path("addresses", id)
}

// mutateProfile sends req and then re-reads the profile, so the cached
// address list is always the server's.
func (s *Session) mutateProfile(ctx context.Context, op string, req client.Request) (models.Principal, error) {
	if s.ep.profile == "" {
		return models.Principal{}, ErrNoProfile
	}

	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	if err := s.api.Do(ctx, req, nil); err != nil {
		s.mu.Lock()
		s.fail(err)
		s.mu.Unlock()
		logFailure(ctx, s.log, op, err)
		return models.Principal{}, err
	}
	s.log.Debug(ctx, "profile changed", "op", op)
	return s.FetchProfile(ctx)
}
