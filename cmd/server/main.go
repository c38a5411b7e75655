package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/civicspath/backend/internal/api"
	"github.com/civicspath/backend/internal/domain/officials"
	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/domain/questionbank"
	"github.com/civicspath/backend/internal/infrastructure/config"
	"github.com/civicspath/backend/internal/infrastructure/logger"
	"github.com/civicspath/backend/internal/infrastructure/metrics"
	"github.com/civicspath/backend/internal/purchases"
	"github.com/civicspath/backend/internal/service"
	"github.com/civicspath/backend/internal/speech"
	"github.com/civicspath/backend/internal/store"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx := context.Background()

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	progressStore, err := progress.Open(ctx, db,
		progress.WithTrialDays(cfg.TrialDays),
		progress.WithPromoCodes(cfg.PromoCodes...),
	)
	if err != nil {
		return err
	}

	bank, err := questionbank.Load()
	if err != nil {
		return err
	}

	m := metrics.New()
	practice := service.NewPracticeService(bank, progressStore, officials.DefaultFederal(), m, zl)

	if cfg.OfficialsFile != "" {
		federal, err := config.WatchOfficials(cfg.OfficialsFile, zl, practice.SetFederal)
		if err != nil {
			return err
		}
		practice.SetFederal(federal)
		zl.Info("officials loaded", zap.String("file", cfg.OfficialsFile), zap.String("last_updated", federal.LastUpdated))
	}

	var provider purchases.Provider = purchases.Unavailable{}
	if cfg.RevenueCatAPIKey != "" {
		provider = purchases.NewRevenueCat(purchases.RevenueCatConfig{
			APIKey:      cfg.RevenueCatAPIKey,
			AppUserID:   cfg.RevenueCatAppUserID,
			Entitlement: cfg.RevenueCatEntitlement,
			Platform:    cfg.RevenueCatPlatform,
		})
	}
	entitlements := service.NewEntitlementService(progressStore, provider, zl)

	var speaker speech.Speaker = speech.Unavailable{}
	if len(cfg.SpeechCommand) > 0 {
		cs, err := speech.NewCommandSpeaker(zl, cfg.SpeechCommand[0], cfg.SpeechCommand[1:]...)
		if err != nil {
			zl.Warn("speech disabled", zap.Error(err))
		} else {
			defer cs.Close()
			speaker = cs
		}
	}

	handler := api.NewHandler(
		practice,
		entitlements,
		service.NewSpeechService(progressStore, speaker),
		progressStore,
		zl,
	)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("GET /metrics", m.Handler())

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: CORS → Logging → Metrics → mux ────────────
	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	chain := corsMiddleware(api.Logging(zl)(m.Middleware(mux)))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           chain,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		zl.Info("shutting down server")
		shutdownErr <- server.Shutdown(ctx)
	}()

	zl.Info("starting server", zap.String("address", cfg.ServerAddress))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}
