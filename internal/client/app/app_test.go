package app

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/config"
	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/client/stores"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routeAPI answers requests by "METHOD path" with canned JSON or an error.
type routeAPI struct {
	mu     sync.Mutex
	routes map[string]func(req client.Request) (string, error)
	calls  []string
}

func newRouteAPI() *routeAPI {
	return &routeAPI{routes: make(map[string]func(client.Request) (string, error))}
}

func (f *routeAPI) on(method, path, body string) {
	f.handle(method, path, func(client.Request) (string, error) { return body, nil })
}

func (f *routeAPI) fail(method, path string, err error) {
	f.handle(method, path, func(client.Request) (string, error) { return "", err })
}

func (f *routeAPI) handle(method, path string, h func(client.Request) (string, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *routeAPI) Do(_ context.Context, req client.Request, dest any) error {
	key := req.Method + " " + req.Path
	f.mu.Lock()
	f.calls = append(f.calls, key)
	h, ok := f.routes[key]
	f.mu.Unlock()
	if !ok {
		return client.NewApplicationError(http.StatusNotFound, "no route "+key)
	}

	body, err := h(req)
	if err != nil || dest == nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), dest); err != nil {
		return err
	}
	if v, ok := dest.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

func (f *routeAPI) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

const profileJSON = `{"_id":"u-1","name":"Ann","email":"ann@example.com",
	"addresses":[{"_id":"a-1","fullName":"Ann","addressLine":"1 Main St","city":"Riga","isDefault":true}]}`

func newTestApp(t *testing.T, api client.Requester) *App {
	t.Helper()
	vault := credentials.NewVault(credentials.NewMemoryStore())
	require.NoError(t, vault.Save(context.Background(), credentials.ScopeUser, "opaque-token"))
	return Wire(api, vault, logging.Discard())
}

func fillCart(t *testing.T, a *App, api *routeAPI) {
	t.Helper()
	api.on(http.MethodGet, "/cart", `[
		{"_id":"c-1","productId":{"_id":"p-1","name":"Aero","price":100},"quantity":2},
		{"_id":"c-2","productId":{"_id":"p-2","name":"Trail","price":50.5},"quantity":1}
	]`)
	_, err := a.Cart.FetchAll(context.Background())
	require.NoError(t, err)
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	api := newRouteAPI()
	a := newTestApp(t, api)
	fillCart(t, a, api)

	api.on(http.MethodGet, "/users/me", profileJSON)

	var sent models.PlaceOrder
	api.handle(http.MethodPost, "/orders", func(req client.Request) (string, error) {
		sent = req.Body.(models.PlaceOrder)
		return `{"_id":"o-1","status":"Pending","totalAmount":250.5,"createdAt":"2024-05-01T10:00:00Z"}`, nil
	})
	api.on(http.MethodDelete, "/cart", `{}`)

	order, err := a.Checkout(ctx, "a-1", "")
	require.NoError(t, err)
	assert.Equal(t, "o-1", order.ID)

	assert.Equal(t, DefaultPaymentMethod, sent.PaymentMethod)
	assert.InDelta(t, 250.5, sent.TotalAmount, 0.001)
	assert.Equal(t, "Riga", sent.Address.City)
	require.Len(t, sent.Items, 2)
	assert.Equal(t, "p-1", sent.Items[0].Product.ID)
	assert.InDelta(t, 100, sent.Items[0].Price, 0.001)

	assert.Empty(t, a.Cart.Snapshot().Items)
	_, ok := a.Orders.Snapshot().Order("o-1")
	assert.True(t, ok)
}

func TestCheckout_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		api := newRouteAPI()
		a := newTestApp(t, api)
		_, err := a.Checkout(ctx, "a-1", "")
		require.ErrorIs(t, err, stores.ErrEmptyCart)
		assert.Empty(t, api.calls)
	})

	t.Run("unknown address", func(t *testing.T) {
		api := newRouteAPI()
		a := newTestApp(t, api)
		fillCart(t, a, api)
		api.on(http.MethodGet, "/users/me", profileJSON)

		_, err := a.Checkout(ctx, "a-9", "")
		require.ErrorIs(t, err, stores.ErrUnknownAddress)
		assert.False(t, api.called("POST /orders"))
	})

	t.Run("profile unavailable", func(t *testing.T) {
		api := newRouteAPI()
		a := newTestApp(t, api)
		fillCart(t, a, api)
		api.fail(http.MethodGet, "/users/me", client.NewTransportError("dial", context.DeadlineExceeded))

		_, err := a.Checkout(ctx, "a-1", "")
		require.ErrorIs(t, err, client.ErrUnavailable)
	})

	t.Run("pending line", func(t *testing.T) {
		api := newRouteAPI()
		a := newTestApp(t, api)
		api.fail(http.MethodPost, "/cart", client.NewApplicationError(http.StatusInternalServerError, "boom"))

		// the default policy keeps the optimistic line, still under its temporary id
		_, err := a.Cart.AddItem(ctx, "p-1", 1)
		require.Error(t, err)

		_, err = a.Checkout(ctx, "a-1", "")
		require.ErrorIs(t, err, stores.ErrItemPending)
	})
}

func TestCheckout_OrderPlacedButCartNotCleared(t *testing.T) {
	ctx := context.Background()
	api := newRouteAPI()
	a := newTestApp(t, api)
	fillCart(t, a, api)
	api.on(http.MethodGet, "/users/me", profileJSON)
	api.on(http.MethodPost, "/orders", `{"_id":"o-2","status":"Pending"}`)
	api.fail(http.MethodDelete, "/cart", client.NewApplicationError(http.StatusInternalServerError, "boom"))

	order, err := a.Checkout(ctx, "a-1", "Card")
	require.Error(t, err)
	assert.Equal(t, "o-2", order.ID)
	assert.Contains(t, err.Error(), "o-2")
	assert.Len(t, a.Cart.Snapshot().Items, 2)
}

func TestSyncAfterLogin_JoinsErrors(t *testing.T) {
	api := newRouteAPI()
	a := newTestApp(t, api)
	api.on(http.MethodGet, "/cart", `[]`)
	api.fail(http.MethodGet, "/wishlist", client.NewApplicationError(http.StatusUnauthorized, "expired"))

	err := a.SyncAfterLogin(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.True(t, api.called("GET /cart"))
	assert.Equal(t, stores.StatusSucceeded, a.Cart.Snapshot().Status)
	assert.Equal(t, stores.StatusFailed, a.Wishlist.Snapshot().Status)
}

func TestLogoutUser_DiscardsShopperState(t *testing.T) {
	ctx := context.Background()
	api := newRouteAPI()
	a := newTestApp(t, api)
	require.NoError(t, a.Vault.Save(ctx, credentials.ScopeAdmin, "admin-token"))
	require.NoError(t, a.Start(ctx))
	fillCart(t, a, api)

	a.LogoutUser(ctx)

	assert.False(t, a.User.Authenticated())
	assert.Empty(t, a.Cart.Snapshot().Items)
	tok, err := a.Vault.Token(ctx, credentials.ScopeUser)
	require.NoError(t, err)
	assert.Empty(t, tok)

	assert.True(t, a.Admin.Authenticated(), "the admin session is independent")
	a.LogoutAdmin(ctx)
	assert.False(t, a.Admin.Authenticated())
}

func TestNew_MemoryStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CredentialsDSN = config.MemoryDSN
	cfg.RollbackOnFailure = true

	a, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, a.Start(context.Background()))
	assert.False(t, a.User.Authenticated())
	require.NoError(t, a.Close())
}

func TestNew_SQLiteStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CredentialsDSN = filepath.Join(t.TempDir(), "nested", "credentials.db")

	a, err := New(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, a.Vault.Save(ctx, credentials.ScopeUser, "opaque-token"))
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, b.Start(ctx))
	assert.True(t, b.User.Authenticated())
	assert.False(t, b.Admin.Authenticated())
}

func TestNew_BadBackendURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CredentialsDSN = config.MemoryDSN
	cfg.BackendURL = "://nowhere"

	_, err := New(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
}
