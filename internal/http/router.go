package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authpkg "github.com/medibill/medibill/internal/auth"
	"github.com/medibill/medibill/internal/http/auth"
	"github.com/medibill/medibill/internal/http/bill"
	"github.com/medibill/medibill/internal/http/cart"
	"github.com/medibill/medibill/internal/http/customer"
	"github.com/medibill/medibill/internal/http/importcsv"
	"github.com/medibill/medibill/internal/http/medicine"
	"github.com/medibill/medibill/internal/http/report"
	"github.com/medibill/medibill/internal/metrics"
)

func New(
	tokens *authpkg.TokenManager,
	authV1 *auth.Handler,
	medicinesV1 *medicine.Handler,
	customersV1 *customer.Handler,
	billsV1 *bill.Handler,
	cartV1 *cart.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)

			r.Route("/medicines", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				medicinesV1.Routes(r)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				customersV1.Routes(r)
			})

			r.Route("/bills", billsV1.Routes)

			r.Route("/cart", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				cartV1.Routes(r)
			})

			r.Route("/reports", reportsV1.Routes)

			r.Route("/import", importV1.Routes)
		})
	})

	return router
}
