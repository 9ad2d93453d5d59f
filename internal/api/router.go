package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/InvestPro-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/InvestPro-Backend/internal/api/middleware"
	"github.com/ndewijer/InvestPro-Backend/internal/config"
	"github.com/ndewijer/InvestPro-Backend/internal/service"
)

// Services bundles the services the HTTP layer delegates to.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Dividend    *service.DividendService
	Market      *service.MarketService
	News        *service.NewsService
	Tax         *service.TaxService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Get("/export", transactionHandler.ExportLedger)
			r.Post("/import", transactionHandler.ImportLedger)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/positions", portfolioHandler.Positions)
			r.Get("/charts", portfolioHandler.Charts)
		})

		r.Route("/dividend", func(r chi.Router) {
			dividendHandler := handlers.NewDividendHandler(services.Dividend)
			r.Get("/calendar", dividendHandler.Calendar)
			r.Get("/calendar/{day}", dividendHandler.Day)
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(services.Market)
			r.Get("/quotes", marketHandler.Quotes)
			r.Post("/refresh", marketHandler.Refresh)
		})

		r.Get("/news", handlers.NewNewsHandler(services.News).News)
		r.Get("/tax/report", handlers.NewTaxHandler(services.Tax).Report)
	})

	return r
}
