// Package credentials is the local key/value store that keeps the bearer
// tokens of the storefront client between runs.
//
// # Overview
//
// Two independent tokens live side by side: the shopper's token under the
// key "token" and the administrator's token under "adminToken". A browsing
// session may hold both at once and clearing one never touches the other.
//
// The package provides:
//  1. The Store contract (Get/Set/Delete) with a SQLite
//     implementation whose schema is applied by embedded goose migrations,
//     and an in-memory implementation for tests and ephemeral runs.
//  2. Vault, the scope-aware view used by the session stores. It is the only
//     writer of tokens; the HTTP client reads through the TokenSource side of
//     it on every authenticated request.
//  3. Inspect, which peeks into JWT claims without verifying them so a
//     session can tell at start-up whether a remembered token already expired
//     and the CLI can show whose token it holds.
package credentials
