package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
)

// Requester performs one backend call and decodes the response into dest.
// A nil dest discards the response body.
type Requester interface {
	Do(ctx context.Context, req Request, dest any) error
}

// Request describes a backend call relative to the configured base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Scope  credentials.Scope
}

func Get(scope credentials.Scope, path string) Request {
	return Request{Method: http.MethodGet, Path: path, Scope: scope}
}

func Post(scope credentials.Scope, path string, body any) Request {
	return Request{Method: http.MethodPost, Path: path, Body: body, Scope: scope}
}

func Put(scope credentials.Scope, path string, body any) Request {
	return Request{Method: http.MethodPut, Path: path, Body: body, Scope: scope}
}

func Delete(scope credentials.Scope, path string) Request {
	return Request{Method: http.MethodDelete, Path: path, Scope: scope}
}

// Path joins segments into an absolute path, escaping each one.
//
//	Path("cart", id) == "/cart/" + url.PathEscape(id)
func Path(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(strings.Trim(s, "/")))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// validator is implemented by payload types that can check required fields.
type validator interface {
	Validate() error
}
