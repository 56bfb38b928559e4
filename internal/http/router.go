package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mwarren-dev/finsight/internal/http/budget"
	"github.com/mwarren-dev/finsight/internal/http/categorize"
	"github.com/mwarren-dev/finsight/internal/http/export"
	"github.com/mwarren-dev/finsight/internal/http/importcsv"
	"github.com/mwarren-dev/finsight/internal/http/report"
	"github.com/mwarren-dev/finsight/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	reportsV1 *report.Handler,
	budgetsV1 *budget.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
	categoriesV1 *categorize.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/budgets", func(r chi.Router) {
			budgetsV1.Routes(r)
		})

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			exportV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoriesV1.Routes(r)
		})
	})

	return router
}
