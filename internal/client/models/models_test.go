package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRef_DecodesIDOrSnapshot(t *testing.T) {
	var items CartItems
	payload := `[
		{"_id":"c-1","productId":"prod-1","quantity":2},
		{"_id":"c-2","productId":{"_id":"prod-2","name":"Trail 29","price":41999.5},"quantity":1}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &items))
	require.NoError(t, items.Validate())

	assert.Equal(t, "prod-1", items[0].Product.ID)
	assert.Nil(t, items[0].Product.Product)
	assert.Zero(t, items[0].Product.Price())

	require.NotNil(t, items[1].Product.Product)
	assert.Equal(t, "prod-2", items[1].Product.ID)
	assert.Equal(t, "Trail 29", items[1].Product.Label())
	assert.InDelta(t, 41999.5, items[1].Product.Price(), 0.001)
}

func TestProductRef_EncodesBackToSameShape(t *testing.T) {
	b, err := json.Marshal(RefID("prod-9"))
	require.NoError(t, err)
	assert.JSONEq(t, `"prod-9"`, string(b))

	b, err = json.Marshal(RefProduct(Product{ID: "prod-9", Name: "Roadster"}))
	require.NoError(t, err)
	var back ProductRef
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "Roadster", back.Label())
}

func TestValidate_RejectsMissingIdentifiers(t *testing.T) {
	require.ErrorIs(t, CartItem{Product: RefID("p"), Quantity: 1}.Validate(), ErrInvalidPayload)
	require.ErrorIs(t, CartItem{ID: "c", Quantity: 1}.Validate(), ErrInvalidPayload)
	require.ErrorIs(t, CartItem{ID: "c", Product: RefID("p")}.Validate(), ErrInvalidPayload)
	require.ErrorIs(t, Products{{ID: "a"}, {}}.Validate(), ErrInvalidPayload)
	require.ErrorIs(t, Principal{}.Validate(), ErrInvalidPayload)
	require.ErrorIs(t, Principal{ID: "u", Addresses: []Address{{}}}.Validate(), ErrInvalidPayload)
	require.ErrorIs(t, Order{ID: "o", Status: "Lost"}.Validate(), ErrInvalidPayload)
	require.ErrorIs(t, WishlistItems{{}}.Validate(), ErrInvalidPayload)
	require.ErrorIs(t, WishlistItems{{ID: "w-1", Product: RefID("p")}, {ID: "w-2"}}.Validate(), ErrInvalidPayload)
	require.NoError(t, WishlistItem{ID: "w-1", Product: RefID("p")}.Validate())
	require.ErrorIs(t, Contacts{{}}.Validate(), ErrInvalidPayload)
	require.NoError(t, Order{ID: "o", Status: OrderShipped}.Validate())
}

func TestOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("Lost").Valid())

	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderShipped.Terminal())

	st, ok := ParseOrderStatus("shipped")
	require.True(t, ok)
	assert.Equal(t, OrderShipped, st)
	_, ok = ParseOrderStatus("returned")
	assert.False(t, ok)
}

func TestPrincipal_Addresses(t *testing.T) {
	p := Principal{ID: "u", Addresses: []Address{{ID: "a1"}, {ID: "a2", IsDefault: true}}}

	def, ok := p.DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, "a2", def.ID)

	_, ok = p.Address("a3")
	assert.False(t, ok)

	clone := p.Clone()
	clone.Addresses[0].City = "Riga"
	assert.Empty(t, p.Addresses[0].City)

	_, ok = Principal{}.DefaultAddress()
	assert.False(t, ok)
}

func TestClone_DeepCopiesSnapshots(t *testing.T) {
	item := CartItem{ID: "c", Product: RefProduct(Product{ID: "p", Name: "A"}), Quantity: 1}
	dup := item.Clone()
	dup.Product.Product.Name = "B"
	assert.Equal(t, "A", item.Product.Product.Name)
}
