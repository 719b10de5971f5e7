package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stitchfield/storefront/internal/ratelimit"
)

// RouterDeps bundles everything the HTTP layer needs.
type RouterDeps struct {
	Products *ProductHandler
	Orders   *OrderHandler
	Admin    *AdminHandler
	Contact  *ContactHandler
}

// NewRouter wires the public storefront API and the authenticated admin API.
func NewRouter(deps RouterDeps) *chi.Mux {
	apiLimiter := ratelimit.New(time.Minute, 100)
	loginLimiter := ratelimit.New(15*time.Minute, 5)
	contactLimiter := ratelimit.New(time.Hour, 3)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		deps.Products.RegisterPublicRoutes(r)
		deps.Orders.RegisterPublicRoutes(r)

		deps.Contact.RegisterPublicRoutes(r.With(contactLimiter.Middleware))

		r.Route("/admin", func(r chi.Router) {
			deps.Admin.RegisterPublicRoutes(r.With(loginLimiter.Middleware))

			r.Group(func(r chi.Router) {
				r.Use(deps.Admin.RequireAuth)
				deps.Admin.RegisterAdminRoutes(r)
				deps.Products.RegisterAdminRoutes(r)
				deps.Orders.RegisterAdminRoutes(r)
			})
		})
	})

	return r
}
