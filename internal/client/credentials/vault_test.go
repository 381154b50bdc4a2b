package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	MemoryStore
	err error
}

func (f *failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f *failingStore) Set(context.Context, string, []byte) error  { return f.err }
func (f *failingStore) Delete(context.Context, string) error        { return f.err }

func TestVault_ScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	v := NewVault(NewMemoryStore())

	require.NoError(t, v.Save(ctx, ScopeUser, "user-token"))
	require.NoError(t, v.Save(ctx, ScopeAdmin, "admin-token"))

	require.NoError(t, v.Forget(ctx, ScopeAdmin))

	tok, err := v.Token(ctx, ScopeUser)
	require.NoError(t, err)
	assert.Equal(t, "user-token", tok)

	tok, err = v.Token(ctx, ScopeAdmin)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestVault_ScopeNone(t *testing.T) {
	ctx := context.Background()
	v := NewVault(NewMemoryStore())

	tok, err := v.Token(ctx, ScopeNone)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.Error(t, v.Save(ctx, ScopeNone, "x"))
	require.NoError(t, v.Forget(ctx, ScopeNone))
}

func TestVault_RejectsBlankToken(t *testing.T) {
	v := NewVault(NewMemoryStore())
	require.Error(t, v.Save(context.Background(), ScopeUser, "  "))
}

func TestVault_WrapsStoreErrors(t *testing.T) {
	boom := errors.New("locked")
	v := NewVault(&failingStore{err: boom})
	ctx := context.Background()

	_, err := v.Token(ctx, ScopeUser)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, v.Save(ctx, ScopeAdmin, "t"), boom)
	require.ErrorIs(t, v.Forget(ctx, ScopeAdmin), boom)
}

func TestScope_KeysAndNames(t *testing.T) {
	assert.Equal(t, "token", ScopeUser.Key())
	assert.Equal(t, "adminToken", ScopeAdmin.Key())
	assert.Empty(t, ScopeNone.Key())
	assert.Equal(t, "admin", ScopeAdmin.String())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", in))
	in[0] = 'z'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
	out[0] = 'y'

	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestVault_Inspect(t *testing.T) {
	ctx := context.Background()
	v := NewVault(NewMemoryStore())

	_, ok, err := v.Inspect(ctx, ScopeAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, v.Save(ctx, ScopeAdmin, signedToken(t, jwt.RegisteredClaims{Subject: "a-7"})))
	info, ok, err := v.Inspect(ctx, ScopeAdmin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a-7", info.Subject)

	boom := errors.New("locked")
	_, ok, err = NewVault(&failingStore{err: boom}).Inspect(ctx, ScopeUser)
	require.ErrorIs(t, err, boom)
	assert.False(t, ok)
}
