package stores

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

// endpoints is what differs between the user and the admin session.
type endpoints struct {
	scope    credentials.Scope
	login    string
	register string
	profile  string // empty when the principal kind has no profile endpoint
}

var (
	userEndpoints = endpoints{
		scope:    credentials.ScopeUser,
		login:    "/login",
		register: "/register",
		profile:  "/users/me",
	}
	adminEndpoints = endpoints{
		scope:    credentials.ScopeAdmin,
		login:    "/admin/login",
		register: "/admin/signup",
	}
)

// SessionSnapshot is a copy of a session's state.
type SessionSnapshot struct {
	Scope         credentials.Scope
	Principal     *models.Principal
	Authenticated bool
	Status        Status
	LastError     string
}

// Session holds the authentication state of one principal kind. It is the
// only writer of that kind's token in the credential vault.
type Session struct {
	mu            sync.RWMutex
	principal     *models.Principal
	authenticated bool
	tracker

	ep    endpoints
	api   client.Requester
	vault *credentials.Vault
	log   logging.Logger
	now   func() time.Time
}

// NewUserSession builds the shopper session.
func NewUserSession(api client.Requester, vault *credentials.Vault, log logging.Logger) *Session {
	return newSession(userEndpoints, api, vault, log)
}

// NewAdminSession builds the administrator session. It shares nothing with
// the user session.
func NewAdminSession(api client.Requester, vault *credentials.Vault, log logging.Logger) *Session {
	return newSession(adminEndpoints, api, vault, log)
}

func newSession(ep endpoints, api client.Requester, vault *credentials.Vault, log logging.Logger) *Session {
	return &Session{
		ep:    ep,
		api:   api,
		vault: vault,
		log:   log.With("store", "session", "scope", ep.scope.String()),
		now:   time.Now,
	}
}

// authResponse is the body of login and registration responses. Users come
// back under "user", admins under "admin".
type authResponse struct {
	Token string            `json:"token"`
	User  *models.Principal `json:"user"`
	Admin *models.Principal `json:"admin"`
}

func (r *authResponse) principal() *models.Principal {
	if r.Admin != nil {
		return r.Admin
	}
	return r.User
}

func (r *authResponse) Validate() error {
	p := r.principal()
	if p == nil {
		return fmt.Errorf("%w: authentication response without principal", models.ErrInvalidPayload)
	}
	return p.Validate()
}

func (s *Session) Scope() credentials.Scope {
	return s.ep.scope
}

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := SessionSnapshot{
		Scope:         s.ep.scope,
		Authenticated: s.authenticated,
		Status:        s.status,
		LastError:     s.lastErr,
	}
	if s.principal != nil {
		p := s.principal.Clone()
		snap.Principal = &p
	}
	return snap
}

// Authenticated reports whether the session currently holds a usable token.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Restore reads the stored token at start-up. A present token that is not a
// known-expired JWT marks the session authenticated; the principal is
// resolved later by FetchProfile. An expired token is discarded.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.vault.Token(ctx, s.ep.scope)
	if err != nil {
		return err
	}

	authenticated := false
	if token != "" {
		info := credentials.Inspect(token)
		if info.Expired(s.now()) {
			s.log.Info(ctx, "discarding expired token", "expired_at", info.ExpiresAt)
			if err := s.vault.Forget(ctx, s.ep.scope); err != nil {
				return err
			}
		} else {
			authenticated = true
		}
	}

	s.mu.Lock()
	s.authenticated = authenticated
	s.mu.Unlock()
	return nil
}

// Login authenticates with the backend and persists the returned token.
func (s *Session) Login(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	return s.authenticate(ctx, "login", s.ep.login, creds, true)
}

// Register creates a principal server side. When the backend also returns a
// token the session is authenticated; admin sign-up does not, and the admin
// has to log in afterwards.
func (s *Session) Register(ctx context.Context, reg models.Registration) (models.Principal, error) {
	return s.authenticate(ctx, "register", s.ep.register, reg, false)
}

func (s *Session) authenticate(ctx context.Context, op, path string, body any, tokenRequired bool) (models.Principal, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var resp authResponse
	err := s.api.Do(ctx, client.Post(credentials.ScopeNone, path, body), &resp)
	if err == nil && resp.Token == "" && tokenRequired {
		err = fmt.Errorf("%s: %w", op, ErrMissingToken)
	}
	if err == nil && resp.Token != "" {
		err = s.vault.Save(ctx, s.ep.scope, resp.Token)
	}
	if err != nil {
		s.mu.Lock()
		s.fail(err)
		s.mu.Unlock()
		logFailure(ctx, s.log, "session."+op, err)
		return models.Principal{}, err
	}

	p := resp.principal().Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = &p
	if resp.Token != "" {
		s.authenticated = true
	}
	s.succeed()
	s.log.Debug(ctx, "session established", "op", op, "principal", p.ID, "authenticated", s.authenticated)
	return p.Clone(), nil
}

// FetchProfile refreshes the principal. A failure keeps the stored token so
// a transient outage does not force a new login.
func (s *Session) FetchProfile(ctx context.Context) (models.Principal, error) {
	if s.ep.profile == "" {
		return models.Principal{}, ErrNoProfile
	}

	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	var p models.Principal
	if err := s.api.Do(ctx, client.Get(s.ep.scope, s.ep.profile), &p); err != nil {
		s.mu.Lock()
		s.fail(err)
		s.mu.Unlock()
		logFailure(ctx, s.log, "session.profile", err)
		return models.Principal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = &p
	s.authenticated = true
	s.succeed()
	return p.Clone(), nil
}

// Logout forgets the principal and the stored token. It never fails; a
// token that cannot be deleted is logged.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.principal = nil
	s.authenticated = false
	s.reset()
	s.mu.Unlock()

	if err := s.vault.Forget(ctx, s.ep.scope); err != nil {
		s.log.Warn(ctx, "failed to forget token", "error", err)
	}
}
