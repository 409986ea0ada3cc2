package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authsvc "github.com/jfonseca/inventorypro/internal/auth"
	"github.com/jfonseca/inventorypro/internal/http/auth"
	"github.com/jfonseca/inventorypro/internal/http/catalog"
	"github.com/jfonseca/inventorypro/internal/http/category"
	"github.com/jfonseca/inventorypro/internal/http/customer"
	"github.com/jfonseca/inventorypro/internal/http/dashboard"
	"github.com/jfonseca/inventorypro/internal/http/export"
	"github.com/jfonseca/inventorypro/internal/http/importcsv"
	"github.com/jfonseca/inventorypro/internal/http/invoice"
	"github.com/jfonseca/inventorypro/internal/http/settings"
)

func New(
	authSvc *authsvc.Service,
	authV1 *auth.Handler,
	productsV1 *catalog.Handler,
	customersV1 *customer.Handler,
	invoicesV1 *invoice.Handler,
	settingsV1 *settings.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	categoriesV1 *category.Handler,
	dashboardV1 *dashboard.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		// Everything below requires a valid session token.
		r.Group(func(r chi.Router) {
			r.Use(authSvc.Middleware)

			r.Route("/products", func(r chi.Router) {
				productsV1.Routes(r)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				customersV1.Routes(r)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				invoicesV1.Routes(r)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				settingsV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)
			r.Route("/export", exportV1.Routes)

			r.Route("/categories", func(r chi.Router) {
				categoriesV1.Routes(r)
			})

			r.Route("/dashboard", func(r chi.Router) {
				dashboardV1.Routes(r)
			})
		})
	})

	return router
}
