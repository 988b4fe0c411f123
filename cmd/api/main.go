package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/blindquote/api/controllers"
	quotecontrollers "github.com/angelmondragon/blindquote/api/controllers/quotes"
	"github.com/angelmondragon/blindquote/api/routes"
	"github.com/angelmondragon/blindquote/internal/fileio"
	"github.com/angelmondragon/blindquote/internal/pricing"
	"github.com/angelmondragon/blindquote/internal/quotes"
	"github.com/angelmondragon/blindquote/internal/render"
	"github.com/angelmondragon/blindquote/pkg/config"
	"github.com/angelmondragon/blindquote/pkg/db"
	"github.com/angelmondragon/blindquote/pkg/logger"
	"github.com/angelmondragon/blindquote/pkg/metrics"
	"github.com/angelmondragon/blindquote/pkg/migrate"
	"github.com/angelmondragon/blindquote/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(runCtx, cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(runCtx, cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	readiness := map[string]controllers.Pinger{"db": dbClient}
	var redisClient *redis.Client
	var drafts *quotes.DraftStore
	if cfg.FeatureFlags.DraftCache {
		redisClient, err = redis.New(runCtx, cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		readiness["redis"] = redisClient
		drafts = quotes.NewDraftStore(redisClient, cfg.Redis.DraftTTL)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	quoteMetrics := metrics.NewQuoteMetrics(reg)

	quoteService, err := quotes.NewService(quotes.ServiceParams{
		Repo:       quotes.NewRepository(dbClient.DB()),
		Drafts:     drafts,
		ProductKey: cfg.Quote.DefaultProduct,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	calculator, err := pricing.NewCalculator(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing calculator", err)
		os.Exit(1)
	}

	branding := render.Branding{CompanyName: cfg.Quote.CompanyName, ValidityDays: cfg.Quote.ValidityDays}
	quoteDeps := quotecontrollers.Deps{
		Quotes: quoteService,
		Files: fileio.NewService(fileio.Options{
			CompanyName: cfg.Quote.CompanyName,
			ProductKey:  cfg.Quote.DefaultProduct,
			Observer:    quoteMetrics,
			Logger:      logg,
		}),
		Pricer:     calculator,
		Printable:  render.NewQuoteHTML(branding, quoteMetrics),
		Gmail:      render.NewGmailHTML(branding, quoteMetrics),
		Batches:    quoteMetrics,
		ProductKey: cfg.Quote.DefaultProduct,
		Logger:     logg,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"db_driver":    cfg.DB.Driver,
		"draft_cache":  drafts != nil,
		"company_name": cfg.Quote.CompanyName,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, readiness, reg, quoteDeps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		for _, err := range multierr.Errors(closeErr) {
			logg.Error(ctx, "error during shutdown", err)
		}
		exitCode = 1
	}
	logg.Info(ctx, "api server stopped")
	os.Exit(exitCode)
}
