package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-trip-planner/internal/app"
	"ai-trip-planner/internal/calendar"
	"ai-trip-planner/internal/config"
	"ai-trip-planner/internal/database"
	"ai-trip-planner/internal/logger"
	"ai-trip-planner/internal/metrics"
	"ai-trip-planner/internal/telegram"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logg := logger.New(cfg.AppEnv)
	slog.SetDefault(logg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Storage and metrics
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		logg.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	metricsStore := metrics.NewStore(db.SQL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	// 3. Telegram
	api, err := telegram.NewAPI(cfg, logg)
	if err != nil {
		logg.Error("failed to initialize telegram", "error", err)
		os.Exit(1)
	}
	alerts := telegram.NewAdminAlerter(api, cfg.AdminTelegramID, telegram.DefaultBloatThreshold, logg)

	// 4. Planner
	application, closeLLM, err := app.Wire(ctx, cfg, app.Deps{
		MetricsStore: metricsStore,
		Collector:    collector,
		OnMeta:       alerts.Observe,
		Logger:       logg,
	})
	if err != nil {
		logg.Error("failed to initialize planner", "error", err)
		os.Exit(1)
	}
	defer closeLLM()

	// 5. Calendar export
	deps := telegram.Deps{
		Planner:      application,
		Sessions:     telegram.NewSessionStore(cfg.SessionTTL),
		MetricsStore: metricsStore,
		Logger:       logg,
	}
	if cfg.GoogleCalendarCredentials != "" {
		gcal, err := calendar.NewGoogleCalendar(ctx, cfg.GoogleCalendarCredentials, cfg.GoogleCalendarID)
		if err != nil {
			logg.Error("failed to initialize google calendar", "error", err)
			os.Exit(1)
		}
		deps.GoogleSink = gcal
	}
	if cfg.CalendarLinkSecret != "" && cfg.PublicBaseURL != "" {
		deps.Links = calendar.NewLinkSigner(cfg.CalendarLinkSecret, cfg.PublicBaseURL, cfg.SessionTTL)
	}
	bot := telegram.New(api, cfg, deps)

	// 6. HTTP
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	bot.Routes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("telegram bot server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.PlanTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logg.Error("server forced to shutdown", "error", err)
	}
	bot.Wait()

	logg.Info("server exiting")
}
