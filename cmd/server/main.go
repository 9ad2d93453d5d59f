package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"

	"github.com/ndewijer/InvestPro-Backend/internal/api"
	"github.com/ndewijer/InvestPro-Backend/internal/backup"
	"github.com/ndewijer/InvestPro-Backend/internal/config"
	"github.com/ndewijer/InvestPro-Backend/internal/database"
	"github.com/ndewijer/InvestPro-Backend/internal/gemini"
	"github.com/ndewijer/InvestPro-Backend/internal/logging"
	"github.com/ndewijer/InvestPro-Backend/internal/market"
	"github.com/ndewijer/InvestPro-Backend/internal/repository"
	"github.com/ndewijer/InvestPro-Backend/internal/scheduler"
	"github.com/ndewijer/InvestPro-Backend/internal/service"
	"github.com/ndewijer/InvestPro-Backend/internal/version"
	"github.com/ndewijer/InvestPro-Backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", version.Version).Msg("Starting InvestPro backend")

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("Failed to open database")
	}
	defer db.Close()

	schemaVersion, err := database.Migrate(context.Background(), db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Str("path", cfg.Database.Path).Int64("schema_version", schemaVersion).Msg("Connected to database")

	sealer, err := backup.NewSealer(cfg.Backup.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load backup key")
	}

	gateway, err := newGateway(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create market gateway")
	}

	services := newServices(db, cfg, sealer, gateway)

	// Validate before anything starts so a typo fails fast.
	if cfg.Market.RefreshSchedule != "" {
		if err := scheduler.ValidateSchedule(cfg.Market.RefreshSchedule); err != nil {
			log.Fatal().Err(err).Msg("Invalid MARKET_REFRESH_SCHEDULE")
		}
	}
	refreshScheduler := scheduler.NewScheduler(services.Market)
	if err := refreshScheduler.Start(cfg.Market.RefreshSchedule); err != nil {
		log.Fatal().Err(err).Msg("Failed to start refresh scheduler")
	}
	refreshScheduler.RunNow()

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(services, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// A manual refresh waits on the gateway.
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	refreshScheduler.Stop()

	log.Info().Msg("Server exited")
}

// newGateway wires the market data sources. Without a Gemini key only the
// Yahoo fallback, if enabled, provides quotes.
func newGateway(cfg *config.Config) (market.Gateway, error) {
	var primary market.Gateway = market.Offline{}
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		primary = client
		log.Info().Str("model", cfg.Gemini.Model).Msg("Gemini gateway enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, dividends, news and tax report are unavailable")
	}

	var fallback market.QuoteSource
	if cfg.Market.YahooFallback {
		fallback = yahoo.NewQuoteSource(yahoo.NewFinanceClient(), cfg.Market.YahooSymbolSuffix)
		log.Info().Str("suffix", cfg.Market.YahooSymbolSuffix).Msg("Yahoo quote fallback enabled")
	}

	return market.NewComposite(primary, fallback), nil
}

func newServices(db *sql.DB, cfg *config.Config, sealer *backup.Sealer, gateway market.Gateway) api.Services {
	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	marketRepo := repository.NewMarketRepository(db)

	// Create services
	portfolioService := service.NewPortfolioService(transactionRepo, marketRepo)

	return api.Services{
		System: service.NewSystemService(db, map[string]bool{
			"gemini":           cfg.Gemini.APIKey != "",
			"yahoo_fallback":   cfg.Market.YahooFallback,
			"sealed_backups":   sealer.Enabled(),
			"scheduled_quotes": cfg.Market.RefreshSchedule != "",
		}),
		Transaction: service.NewTransactionService(transactionRepo, sealer),
		Portfolio:   portfolioService,
		Dividend:    service.NewDividendService(portfolioService),
		Market:      service.NewMarketService(portfolioService, marketRepo, gateway),
		News:        service.NewNewsService(portfolioService, gateway),
		Tax:         service.NewTaxService(portfolioService, gateway),
	}
}
