package stores

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersPayload = `[
	{"_id":"o-1","status":"Delivered","totalAmount":100,"createdAt":"2024-01-01T10:00:00Z"},
	{"_id":"o-2","status":"Pending","totalAmount":200,"createdAt":"2024-03-01T10:00:00Z"},
	{"_id":"o-3","status":"Shipped","totalAmount":300,"createdAt":"2024-02-01T10:00:00Z"}
]`

func orderIDs(orders []models.Order) []string {
	var out []string
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestOrders_FetchAllNewestFirst(t *testing.T) {
	api := &fakeAPI{}
	api.on(respondWith(ordersPayload))
	s := NewOrderStore(api, testLogger())

	got, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"o-2", "o-3", "o-1"}, orderIDs(got))
	assert.Equal(t, []string{"o-2", "o-3", "o-1"}, orderIDs(s.Snapshot().Orders))
}

func TestOrders_Place(t *testing.T) {
	api := &fakeAPI{}
	s := NewOrderStore(api, testLogger())
	api.on(respondWith(`{"_id":"o-9","status":"Pending","totalAmount":50,"createdAt":"2025-01-01T00:00:00Z"}`))

	placed, err := s.Place(context.Background(), models.PlaceOrder{
		Items:         []models.OrderLine{{Product: models.RefID("p1"), Quantity: 1, Price: 50}},
		TotalAmount:   50,
		PaymentMethod: "Cash on Delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, "o-9", placed.ID)
	assert.Equal(t, []string{"o-9"}, orderIDs(s.Snapshot().Orders))
	assert.Equal(t, credentials.ScopeUser, api.Calls()[0].Scope)
}

func TestOrders_Cancel(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	api.on(respondWith(ordersPayload))
	s := NewOrderStore(api, testLogger())
	_, err := s.FetchAll(ctx)
	require.NoError(t, err)

	require.ErrorIs(t, s.Cancel(ctx, "o-3"), ErrNotCancellable)
	assert.Equal(t, StatusFailed, s.Snapshot().Status)
	assert.Equal(t, ErrNotCancellable.Error(), s.Snapshot().LastError)
	require.ErrorIs(t, s.Cancel(ctx, "o-1"), ErrNotCancellable)
	assert.Len(t, api.Calls(), 1)

	api.on(failWith(400, "Order cannot be cancelled"))
	require.Error(t, s.Cancel(ctx, "o-2"))
	o, _ := s.Snapshot().Order("o-2")
	assert.Equal(t, models.OrderPending, o.Status)

	api.on(respondWith(`{"message":"cancelled"}`))
	require.NoError(t, s.Cancel(ctx, "o-2"))
	o, _ = s.Snapshot().Order("o-2")
	assert.Equal(t, models.OrderCancelled, o.Status)
	assert.Equal(t, "/orders/o-2/cancel", api.Calls()[len(api.Calls())-1].Path)

	s.Reset()
	assert.Empty(t, s.Snapshot().Orders)
}
