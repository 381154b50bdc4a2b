// Package common contains constants and sentinel errors shared by the
// storefront client and the development backend.
package common

// HTTP header names and values used on the wire between the client and the
// backend.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-ID"
	ContentTypeJSON     = "application/json"
)
