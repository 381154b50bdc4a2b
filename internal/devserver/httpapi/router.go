package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cycleshop/internal/devserver/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Post("/register", s.registerUser)
	r.Post("/login", s.loginUser)

	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)

	r.Post("/contacts", s.submitContact)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate(auth.RoleUser))

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", s.getProfile)
			r.Put("/", s.updateProfile)
			r.Post("/addresses", s.addAddress)
			r.Put("/addresses/{id}", s.updateAddress)
			r.Delete("/addresses/{id}", s.deleteAddress)
			r.Put("/addresses/{id}/default", s.setDefaultAddress)
		})

		r.Post("/products/{id}/ratings", s.rateProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.getCart)
			r.Post("/", s.addToCart)
			r.Delete("/", s.clearCart)
			r.Put("/{id}", s.updateCartItem)
			r.Delete("/{id}", s.removeCartItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", s.getWishlist)
			r.Post("/", s.addToWishlist)
			r.Delete("/{productId}", s.removeFromWishlist)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.listOrders)
			r.Post("/", s.placeOrder)
			r.Put("/{id}/cancel", s.cancelOrder)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/signup", s.signupAdmin)
		r.Post("/login", s.loginAdmin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate(auth.RoleAdmin))

			r.Get("/orders", s.listAllOrders)
			r.Put("/orders/{id}", s.setOrderStatus)
			r.Get("/contacts", s.listContacts)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
