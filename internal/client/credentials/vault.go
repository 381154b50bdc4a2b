package credentials

import (
	"context"
	"fmt"
	"strings"
)

// Scope selects which principal's credential a request carries.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeUser
	ScopeAdmin
)

// Storage keys of the two independent tokens.
const (
	UserTokenKey  = "token"
	AdminTokenKey = "adminToken"
)

func (s Scope) String() string {
	switch s {
	case ScopeUser:
		return "user"
	case ScopeAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Key returns the storage key of the scope's token, or "" for ScopeNone.
func (s Scope) Key() string {
	switch s {
	case ScopeUser:
		return UserTokenKey
	case ScopeAdmin:
		return AdminTokenKey
	default:
		return ""
	}
}

// TokenSource is the read-only view the HTTP client uses to attach bearer
// credentials.
type TokenSource interface {
	Token(ctx context.Context, scope Scope) (string, error)
}

// Vault maps scopes onto Store keys.
type Vault struct {
	store Store
}

var _ TokenSource = (*Vault)(nil)

func NewVault(store Store) *Vault {
	return &Vault{store: store}
}

// Token returns the stored token for scope, or "" when there is none.
func (v *Vault) Token(ctx context.Context, scope Scope) (string, error) {
	key := scope.Key()
	if key == "" {
		return "", nil
	}
	raw, err := v.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read %s token: %w", scope, err)
	}
	return string(raw), nil
}

// Save persists token for scope. Blank tokens are rejected.
func (v *Vault) Save(ctx context.Context, scope Scope, token string) error {
	key := scope.Key()
	if key == "" {
		return fmt.Errorf("cannot store a token for scope %s", scope)
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty %s token", scope)
	}
	if err := v.store.Set(ctx, key, []byte(token)); err != nil {
		return fmt.Errorf("save %s token: %w", scope, err)
	}
	return nil
}

// Inspect decodes the stored token of scope. ok is false when there is none.
func (v *Vault) Inspect(ctx context.Context, scope Scope) (info TokenInfo, ok bool, err error) {
	token, err := v.Token(ctx, scope)
	if err != nil || token == "" {
		return TokenInfo{}, false, err
	}
	return Inspect(token), true, nil
}

// Forget deletes the token of scope. Deleting an absent token is not an error.
func (v *Vault) Forget(ctx context.Context, scope Scope) error {
	key := scope.Key()
	if key == "" {
		return nil
	}
	if err := v.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("forget %s token: %w", scope, err)
	}
	return nil
}
