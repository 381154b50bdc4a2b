// Package stores holds the client-side mirrors of backend state.
//
// Each store owns one slice of state (a session, the cart, the wishlist, the
// catalog, order history, the admin views) behind its own lock. Views read a
// Snapshot and call operations; operations block until the backend call
// settles and then apply the outcome. On failure a store records
// StatusFailed and the server message before returning the error, so the
// failure is both returned and queryable.
//
// The cart is the only optimistic store. AddItem and UpdateQuantity change
// local state before the request is sent; every other mutation waits for
// the backend to confirm. What happens to an optimistic change that the
// backend rejects is a per-store choice, see WithRollbackOnFailure.
package stores
