// Package models defines the typed records exchanged with the storefront
// backend: principals, catalog products, cart and wishlist items, orders,
// addresses and contact messages.
//
// Every record that the backend identifies carries a Validate method; the
// HTTP client calls it right after decoding so a payload missing its
// identifier fails at the boundary instead of leaking empty fields into the
// stores.
package models
