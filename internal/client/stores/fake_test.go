package stores

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a scripted Requester.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []client.Request
	handle func(ctx context.Context, req client.Request, dest any) error
}

func (f *fakeAPI) Do(ctx context.Context, req client.Request, dest any) error {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	h := f.handle
	f.mu.Unlock()
	if h == nil {
		return nil
	}
	return h(ctx, req, dest)
}

func (f *fakeAPI) Calls() []client.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.Request(nil), f.calls...)
}

func (f *fakeAPI) on(h func(ctx context.Context, req client.Request, dest any) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handle = h
}

// reply decodes body into dest the way the HTTP client would, including
// payload validation.
func reply(dest any, body string) error {
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(body), dest); err != nil {
		return err
	}
	if v, ok := dest.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

func respondWith(body string) func(context.Context, client.Request, any) error {
	return func(_ context.Context, _ client.Request, dest any) error {
		return reply(dest, body)
	}
}

func failWith(status int, msg string) func(context.Context, client.Request, any) error {
	return func(context.Context, client.Request, any) error {
		return client.NewApplicationError(status, msg)
	}
}

func newVault(t *testing.T) (*credentials.Vault, *credentials.MemoryStore) {
	t.Helper()
	store := credentials.NewMemoryStore()
	return credentials.NewVault(store), store
}

func storedToken(t *testing.T, v *credentials.Vault, scope credentials.Scope) string {
	t.Helper()
	tok, err := v.Token(context.Background(), scope)
	require.NoError(t, err)
	return tok
}

func testLogger() logging.Logger {
	return logging.Discard()
}
