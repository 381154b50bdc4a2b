// Package shop is the in-memory business layer of the development backend:
// accounts, catalog, carts, wishlists, orders and contact messages. All
// state lives in one Shop guarded by a single mutex and is lost on restart.
//
// Errors are the sentinels of package common, so the HTTP layer can map them
// to status codes:
//
//	common.ErrorValidation    -> 400
//	common.ErrorUnauthorized  -> 401
//	common.ErrorNotFound      -> 404
//	common.ErrorAlreadyExists -> 409
//	common.ErrorConflict      -> 409
package shop

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Shop holds the whole backend state.
type Shop struct {
	mu sync.RWMutex

	now        func() time.Time
	newID      func() string
	bcryptCost int

	users  directory
	admins directory

	products     map[string]*models.Product
	productOrder []string

	carts     map[string][]models.CartItem
	wishlists map[string][]models.WishlistItem

	orders   []*models.Order
	contacts []models.Contact
}

// Option customises a Shop.
type Option func(*Shop)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Shop) { s.now = now }
}

// WithIDs replaces the uuid generator.
func WithIDs(newID func() string) Option {
	return func(s *Shop) { s.newID = newID }
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Shop) { s.bcryptCost = cost }
}

// New returns an empty Shop.
func New(opts ...Option) *Shop {
	s := &Shop{
		now:        time.Now,
		newID:      uuid.NewString,
		bcryptCost: bcrypt.DefaultCost,
		users:      newDirectory(),
		admins:     newDirectory(),
		products:   make(map[string]*models.Product),
		carts:      make(map[string][]models.CartItem),
		wishlists:  make(map[string][]models.WishlistItem),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
