package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/familytable/internal/api"
	"github.com/mmynk/familytable/internal/auth"
	"github.com/mmynk/familytable/internal/config"
	"github.com/mmynk/familytable/internal/events"
	"github.com/mmynk/familytable/internal/family"
	"github.com/mmynk/familytable/internal/middleware"
	"github.com/mmynk/familytable/internal/notify"
	"github.com/mmynk/familytable/internal/recipe"
	"github.com/mmynk/familytable/internal/service"
	"github.com/mmynk/familytable/internal/storage/sqlite"
	"github.com/mmynk/familytable/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			slog.Error("Failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer amqpPub.Close()
		publisher = amqpPub
		slog.Info("Activity publishing enabled", "exchange", cfg.AMQPExchange)
	}

	notifier := notify.NewDispatcher(publisher)
	directory := family.NewDirectory(store, notifier)
	book := recipe.NewBook(store, notifier, cfg.RecipeFetchLimit)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, service.PublicProcedures()...),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(api.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, slog.Default()), interceptors))
	mux.Handle(api.NewFamilyServiceHandler(service.NewFamilyService(directory), interceptors))
	mux.Handle(api.NewRecipeServiceHandler(service.NewRecipeService(book), interceptors))
	mux.Handle(api.NewNotificationServiceHandler(
		service.NewNotificationService(store, cfg.NotificationFetchLimit), interceptors))

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := middleware.HTTPLogger(cors.New(cfg.CORS()).Handler(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
