package stores

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoLineCart = `[
	{"_id":"c-1","productId":{"_id":"prod-1","name":"Roadster","price":100},"quantity":2},
	{"_id":"c-2","productId":{"_id":"prod-2","name":"Trail","price":50.5},"quantity":1}
]`

func loadedCart(t *testing.T, api *fakeAPI, opts ...CartOption) *CartStore {
	t.Helper()
	api.on(respondWith(twoLineCart))
	s := NewCartStore(api, testLogger(), opts...)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	return s
}

func TestCart_AddReplacesTemporaryLine(t *testing.T) {
	api := &fakeAPI{}
	s := NewCartStore(api, testLogger())

	var during CartSnapshot
	api.on(func(_ context.Context, req client.Request, dest any) error {
		during = s.Snapshot()
		return reply(dest, `{"_id":"c-99","productId":"prod-1","quantity":1}`)
	})

	item, err := s.AddItem(context.Background(), "prod-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "c-99", item.ID)

	require.Len(t, during.Items, 1)
	assert.True(t, IsTempID(during.Items[0].ID))
	assert.Equal(t, 1, during.Items[0].Quantity)
	assert.Equal(t, StatusLoading, during.Status)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "c-99", snap.Items[0].ID)
	assert.Equal(t, 1, snap.Items[0].Quantity)
	assert.Equal(t, StatusSucceeded, snap.Status)

	call := api.Calls()[0]
	assert.Equal(t, "/cart", call.Path)
	assert.Equal(t, credentials.ScopeUser, call.Scope)
	assert.Equal(t, models.AddToCart{ProductID: "prod-1", Quantity: 1}, call.Body)
}

func TestCart_ConcurrentAddsMergeIntoOneLine(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	s := NewCartStore(api, testLogger())

	release := make(chan struct{})
	var posts atomic.Int32
	var during CartSnapshot
	api.on(func(_ context.Context, req client.Request, dest any) error {
		if posts.Add(1) == 1 {
			<-release
			return reply(dest, `{"_id":"c-1","productId":"prod-1","quantity":2}`)
		}
		during = s.Snapshot()
		return reply(dest, `{"_id":"c-1","productId":"prod-1","quantity":5}`)
	})

	first := make(chan error, 1)
	go func() {
		_, err := s.AddItem(ctx, "prod-1", 2)
		first <- err
	}()
	require.Eventually(t, func() bool { return posts.Load() == 1 }, time.Second, time.Millisecond)

	_, err := s.AddItem(ctx, "prod-1", 3)
	require.NoError(t, err)

	require.Len(t, during.Items, 1)
	assert.Equal(t, 5, during.Items[0].Quantity)
	assert.True(t, IsTempID(during.Items[0].ID))

	close(release)
	require.NoError(t, <-first)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "c-1", snap.Items[0].ID)
	assert.Equal(t, 5, snap.Items[0].Quantity)
}

func TestCart_AddMergesIntoConfirmedLine(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)

	api.on(respondWith(`{"_id":"c-1","productId":"prod-1","quantity":5}`))
	_, err := s.AddItem(context.Background(), "prod-1", 3)
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 2)
	line, ok := snap.Item("c-1")
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, "Roadster", line.Product.Label(), "snapshot kept when the server returns a bare id")
}

func TestCart_AddFailureKeepsOptimisticState(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)

	api.on(failWith(500, "Product not found in stock"))
	_, err := s.AddItem(context.Background(), "prod-3", 1)
	require.Error(t, err)
	_, err = s.AddItem(context.Background(), "prod-1", 1)
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "Product not found in stock", snap.LastError)
	require.Len(t, snap.Items, 3)
	assert.True(t, IsTempID(snap.Items[2].ID))
	line, _ := snap.Item("c-1")
	assert.Equal(t, 3, line.Quantity)
}

func TestCart_AddFailureRollsBack(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api, WithRollbackOnFailure())
	before := s.Snapshot().Items

	api.on(failWith(500, "boom"))
	_, err := s.AddItem(context.Background(), "prod-3", 1)
	require.Error(t, err)
	_, err = s.AddItem(context.Background(), "prod-1", 4)
	require.Error(t, err)

	assert.Equal(t, before, s.Snapshot().Items)
}

// gatedAdds answers POST /cart once per quantity, each waiting on its own gate.
func gatedAdds(started map[int]*atomic.Bool, gates map[int]chan error, bodies map[int]string) func(context.Context, client.Request, any) error {
	return func(_ context.Context, req client.Request, dest any) error {
		q := req.Body.(models.AddToCart).Quantity
		started[q].Store(true)
		if err := <-gates[q]; err != nil {
			return err
		}
		return reply(dest, bodies[q])
	}
}

func TestCart_RollbackKeepsLineConfirmedByEarlierAdd(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	s := NewCartStore(api, testLogger(), WithRollbackOnFailure())

	started := map[int]*atomic.Bool{1: {}, 3: {}}
	gates := map[int]chan error{1: make(chan error, 1), 3: make(chan error, 1)}
	api.on(gatedAdds(started, gates, map[int]string{1: `{"_id":"c-1","productId":"prod-1","quantity":1}`}))

	first := make(chan error, 1)
	go func() {
		_, err := s.AddItem(ctx, "prod-1", 1)
		first <- err
	}()
	require.Eventually(t, started[1].Load, time.Second, time.Millisecond)

	second := make(chan error, 1)
	go func() {
		_, err := s.AddItem(ctx, "prod-1", 3)
		second <- err
	}()
	require.Eventually(t, started[3].Load, time.Second, time.Millisecond)
	require.Equal(t, 4, s.Snapshot().Items[0].Quantity)

	gates[1] <- nil
	require.NoError(t, <-first)
	gates[3] <- client.NewApplicationError(500, "boom")
	require.Error(t, <-second)

	items := s.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, "c-1", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCart_RollbackKeepsServerQuantityOfMergedLine(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	s := loadedCart(t, api, WithRollbackOnFailure())

	started := map[int]*atomic.Bool{1: {}, 3: {}}
	gates := map[int]chan error{1: make(chan error, 1), 3: make(chan error, 1)}
	api.on(gatedAdds(started, gates, map[int]string{1: `{"_id":"c-1","productId":"prod-1","quantity":3}`}))

	first := make(chan error, 1)
	go func() {
		_, err := s.AddItem(ctx, "prod-1", 1)
		first <- err
	}()
	require.Eventually(t, started[1].Load, time.Second, time.Millisecond)

	second := make(chan error, 1)
	go func() {
		_, err := s.AddItem(ctx, "prod-1", 3)
		second <- err
	}()
	require.Eventually(t, started[3].Load, time.Second, time.Millisecond)

	gates[1] <- nil
	require.NoError(t, <-first)
	gates[3] <- client.NewApplicationError(500, "boom")
	require.Error(t, <-second)

	line, ok := s.Snapshot().Item("c-1")
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity, "server record is kept")
}

func TestCart_AddConfirmationForVanishedLineIsDiscarded(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	s := NewCartStore(api, testLogger())

	release := make(chan struct{})
	var started atomic.Bool
	api.on(func(_ context.Context, _ client.Request, dest any) error {
		started.Store(true)
		<-release
		return reply(dest, `{"_id":"c-7","productId":"prod-7","quantity":1}`)
	})

	done := make(chan error, 1)
	go func() {
		_, err := s.AddItem(ctx, "prod-7", 1)
		done <- err
	}()
	require.Eventually(t, started.Load, time.Second, time.Millisecond)

	s.Reset()
	close(release)
	require.NoError(t, <-done)
	assert.Empty(t, s.Snapshot().Items)
}

func TestCart_AddConfirmationDeduplicatesAfterRefresh(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	s := NewCartStore(api, testLogger())

	release := make(chan struct{})
	var posts atomic.Int32
	api.on(func(_ context.Context, req client.Request, dest any) error {
		if req.Method == "GET" {
			return reply(dest, `[{"_id":"c-5","productId":"prod-5","quantity":1}]`)
		}
		posts.Add(1)
		<-release
		return reply(dest, `{"_id":"c-5","productId":"prod-5","quantity":1}`)
	})

	done := make(chan error, 1)
	go func() {
		_, err := s.AddItem(ctx, "prod-5", 1)
		done <- err
	}()
	require.Eventually(t, func() bool { return posts.Load() == 1 }, time.Second, time.Millisecond)

	_, err := s.FetchAll(ctx)
	require.NoError(t, err)
	close(release)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "c-5", snap.Items[0].ID)
}

func TestCart_AddValidation(t *testing.T) {
	api := &fakeAPI{}
	s := NewCartStore(api, testLogger())

	_, err := s.AddItem(context.Background(), "", 1)
	require.ErrorIs(t, err, ErrMissingID)
	_, err = s.AddItem(context.Background(), "prod-1", 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, api.Calls())
	assert.Equal(t, StatusIdle, s.Snapshot().Status)
}

func TestCart_RemoveFailureLeavesItem(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)
	before := s.Snapshot().Items

	api.on(failWith(500, "Internal error"))
	require.Error(t, s.RemoveItem(context.Background(), "c-1"))

	snap := s.Snapshot()
	assert.Equal(t, before, snap.Items)
	assert.Equal(t, StatusFailed, snap.Status)
}

func TestCart_RemoveSuccess(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)

	api.on(respondWith(`{"message":"Item removed"}`))
	require.NoError(t, s.RemoveItem(context.Background(), "c-1"))

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "c-2", snap.Items[0].ID)
	last := api.Calls()[len(api.Calls())-1]
	assert.Equal(t, "DELETE", last.Method)
	assert.Equal(t, "/cart/c-1", last.Path)
}

func TestCart_PendingLinesCannotBeChanged(t *testing.T) {
	api := &fakeAPI{}
	s := NewCartStore(api, testLogger())

	require.ErrorIs(t, s.RemoveItem(context.Background(), "tmp-1"), ErrItemPending)
	snap := s.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, ErrItemPending.Error(), snap.LastError)

	s.Reset()
	_, err := s.UpdateQuantity(context.Background(), "tmp-1", 2)
	require.ErrorIs(t, err, ErrItemPending)
	snap = s.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, ErrItemPending.Error(), snap.LastError)
	assert.Empty(t, api.Calls())
}

func TestCart_UpdateQuantityBelowOneIsNoop(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)
	before := s.Snapshot()
	calls := len(api.Calls())

	for _, q := range []int{0, -1} {
		_, err := s.UpdateQuantity(context.Background(), "c-1", q)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}

	assert.Equal(t, before, s.Snapshot())
	assert.Len(t, api.Calls(), calls)
}

func TestCart_UpdateQuantity(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)

	var during CartSnapshot
	api.on(func(_ context.Context, req client.Request, dest any) error {
		during = s.Snapshot()
		return reply(dest, `{"_id":"c-1","productId":"prod-1","quantity":4}`)
	})
	_, err := s.UpdateQuantity(context.Background(), "c-1", 4)
	require.NoError(t, err)

	line, _ := during.Item("c-1")
	assert.Equal(t, 4, line.Quantity)
	line, _ = s.Snapshot().Item("c-1")
	assert.Equal(t, 4, line.Quantity)
	assert.InDelta(t, 450.5, s.Snapshot().Subtotal(), 0.001)
}

func TestCart_UpdateQuantityFailure(t *testing.T) {
	t.Run("keeps user value", func(t *testing.T) {
		api := &fakeAPI{}
		s := loadedCart(t, api)
		api.on(failWith(500, "boom"))

		_, err := s.UpdateQuantity(context.Background(), "c-1", 7)
		require.Error(t, err)
		line, _ := s.Snapshot().Item("c-1")
		assert.Equal(t, 7, line.Quantity)
	})
	t.Run("rolls back", func(t *testing.T) {
		api := &fakeAPI{}
		s := loadedCart(t, api, WithRollbackOnFailure())
		api.on(failWith(500, "boom"))

		_, err := s.UpdateQuantity(context.Background(), "c-1", 7)
		require.Error(t, err)
		line, _ := s.Snapshot().Item("c-1")
		assert.Equal(t, 2, line.Quantity)
	})
}

func TestCart_Clear(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)

	api.on(failWith(503, "Service Unavailable"))
	require.Error(t, s.Clear(context.Background()))
	assert.Len(t, s.Snapshot().Items, 2)

	api.on(respondWith(`{}`))
	require.NoError(t, s.Clear(context.Background()))
	assert.Empty(t, s.Snapshot().Items)
}

func TestCart_FetchAllIsStable(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)
	first := s.Snapshot()

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, s.Snapshot())
	assert.Equal(t, 3, first.Count())
}

func TestCart_FetchAllRejectsMalformedPayload(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)

	api.on(func(_ context.Context, _ client.Request, dest any) error {
		if err := reply(dest, `[{"productId":"p","quantity":1}]`); err != nil {
			return client.NewTransportError("decode", err)
		}
		return nil
	})
	_, err := s.FetchAll(context.Background())
	require.Error(t, err)
	assert.Len(t, s.Snapshot().Items, 2)
}

func TestCart_SnapshotIsACopy(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)

	snap := s.Snapshot()
	snap.Items[0].Quantity = 99
	snap.Items[0].Product.Product.Name = "changed"

	line, _ := s.Snapshot().Item("c-1")
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "Roadster", line.Product.Label())
}

func TestCart_Reset(t *testing.T) {
	api := &fakeAPI{}
	s := loadedCart(t, api)
	s.Reset()
	assert.Equal(t, CartSnapshot{}, s.Snapshot())
}

func TestTempIDs_StrictlyIncreasing(t *testing.T) {
	frozen := time.Unix(0, 1000)
	ids := NewTempIDs(func() time.Time { return frozen })

	assert.Equal(t, "tmp-1000", ids.Next())
	assert.Equal(t, "tmp-1001", ids.Next())
	assert.Equal(t, "tmp-1002", ids.Next())
	assert.True(t, IsTempID("tmp-5"))
	assert.False(t, IsTempID("c-5"))
}
