// Package client is the storefront's Remote Resource Client.
//
// # Overview
//
// Stores never talk HTTP themselves. They describe a call as a Request
// (method, path, optional query and JSON body, credential scope) and hand it
// to a Requester together with a typed destination. HTTPClient is the
// production Requester: it attaches the bearer token of the requested scope,
// stamps every call with an X-Request-ID, encodes and decodes JSON and makes
// exactly one attempt.
//
// # Error Handling
//
// Every failure is an *Error carrying the server message, an Origin
// (transport or application) and the HTTP status when there was one. Callers
// match categories with errors.Is against ErrUnavailable, ErrUnauthorized,
// ErrNotFound, ErrConflict and ErrDecode.
//
// A destination that implements Validate() error is validated after decoding;
// a payload missing required identifiers is reported as ErrDecode.
package client
