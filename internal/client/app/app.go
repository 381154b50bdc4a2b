// Package app is the composition root of the storefront client: it builds
// every store exactly once and hosts the flows that span several of them.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/client/config"
	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/client/stores"
	"github.com/dmitrijs2005/cycleshop/internal/filex"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

const DefaultPaymentMethod = "Cash on Delivery"

type App struct {
	Log   logging.Logger
	Vault *credentials.Vault

	User          *stores.Session
	Admin         *stores.Session
	Catalog       *stores.CatalogStore
	Cart          *stores.CartStore
	Wishlist      *stores.WishlistStore
	Orders        *stores.OrderStore
	AdminOrders   *stores.AdminOrderStore
	AdminContacts *stores.AdminContactStore

	closer func() error
}

// New opens the credential store named by cfg, builds the HTTP client and
// wires the stores.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	var (
		store  credentials.Store
		closer func() error
	)
	if cfg.CredentialsDSN == config.MemoryDSN {
		store = credentials.NewMemoryStore()
	} else {
		if filex.IsPlainPath(cfg.CredentialsDSN) {
			if _, err := filex.EnsureParentDir(cfg.CredentialsDSN); err != nil {
				return nil, fmt.Errorf("prepare credential store: %w", err)
			}
		}
		sqlite, err := credentials.Open(ctx, cfg.CredentialsDSN)
		if err != nil {
			return nil, fmt.Errorf("open credential store: %w", err)
		}
		store, closer = sqlite, sqlite.Close
	}
	vault := credentials.NewVault(store)

	api, err := client.NewHTTPClient(cfg.BackendURL, vault, cfg.RequestTimeout, client.WithLogger(log.With("component", "http")))
	if err != nil {
		if closer != nil {
			_ = closer()
		}
		return nil, err
	}

	var cartOpts []stores.CartOption
	if cfg.RollbackOnFailure {
		cartOpts = append(cartOpts, stores.WithRollbackOnFailure())
	}
	a := Wire(api, vault, log, cartOpts...)
	a.closer = closer
	return a, nil
}

// Wire builds the stores around an existing Requester and vault.
func Wire(api client.Requester, vault *credentials.Vault, log logging.Logger, cartOpts ...stores.CartOption) *App {
	return &App{
		Log:           log,
		Vault:         vault,
		User:          stores.NewUserSession(api, vault, log),
		Admin:         stores.NewAdminSession(api, vault, log),
		Catalog:       stores.NewCatalogStore(api, log),
		Cart:          stores.NewCartStore(api, log, cartOpts...),
		Wishlist:      stores.NewWishlistStore(api, log),
		Orders:        stores.NewOrderStore(api, log),
		AdminOrders:   stores.NewAdminOrderStore(api, log),
		AdminContacts: stores.NewAdminContactStore(api, log),
	}
}

// Start restores both sessions from the credential store.
func (a *App) Start(ctx context.Context) error {
	return errors.Join(a.User.Restore(ctx), a.Admin.Restore(ctx))
}

// SyncAfterLogin loads the shopper's cart and wishlist. Both are attempted
// even when one fails.
func (a *App) SyncAfterLogin(ctx context.Context) error {
	_, cartErr := a.Cart.FetchAll(ctx)
	_, wishErr := a.Wishlist.FetchAll(ctx)
	return errors.Join(cartErr, wishErr)
}

// LogoutUser ends the shopper session and drops everything mirrored for it.
func (a *App) LogoutUser(ctx context.Context) {
	a.User.Logout(ctx)
	a.Cart.Reset()
	a.Wishlist.Reset()
	a.Orders.Reset()
}

// LogoutAdmin ends the admin session and drops the admin views.
func (a *App) LogoutAdmin(ctx context.Context) {
	a.Admin.Logout(ctx)
	a.AdminOrders.Reset()
	a.AdminContacts.Reset()
}

// Checkout places an order for the current cart, delivered to the profile
// address addressID, and empties the cart once the order is accepted.
func (a *App) Checkout(ctx context.Context, addressID, paymentMethod string) (models.Order, error) {
	cart := a.Cart.Snapshot()
	if len(cart.Items) == 0 {
		return models.Order{}, stores.ErrEmptyCart
	}
	for _, it := range cart.Items {
		if stores.IsTempID(it.ID) {
			return models.Order{}, stores.ErrItemPending
		}
	}

	principal := a.User.Snapshot().Principal
	if principal == nil {
		p, err := a.User.FetchProfile(ctx)
		if err != nil {
			return models.Order{}, err
		}
		principal = &p
	}
	addr, ok := principal.Address(addressID)
	if !ok {
		return models.Order{}, stores.ErrUnknownAddress
	}
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	order := models.PlaceOrder{
		Items:         make([]models.OrderLine, 0, len(cart.Items)),
		TotalAmount:   cart.Subtotal(),
		Address:       addr,
		PaymentMethod: paymentMethod,
	}
	for _, it := range cart.Items {
		order.Items = append(order.Items, models.OrderLine{
			Product:  models.RefID(it.Product.ID),
			Quantity: it.Quantity,
			Price:    it.Product.Price(),
		})
	}

	placed, err := a.Orders.Place(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	if err := a.Cart.Clear(ctx); err != nil {
		return placed, fmt.Errorf("order %s placed but the cart was not cleared: %w", placed.ID, err)
	}
	a.Log.Info(ctx, "order placed", "order", placed.ID, "total", placed.TotalAmount)
	return placed, nil
}

// Close releases the credential store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
