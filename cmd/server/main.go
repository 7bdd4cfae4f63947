package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/logging"
)

const (
	shutdownTimeout = 10 * time.Second
	// events kept for /debug/events
	debugEventLimit = 200
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger, err := logging.Setup(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}

	store, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "driver", cfg.Store.Driver, "path", cfg.Store.Path)

	handler, err := newHandler(cfg, store, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		// h2c serves HTTP/2 without TLS for Connect and gRPC clients
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// newHandler wires the ledger, its notifiers and the auth services onto one handler.
func newHandler(cfg *config.Config, store storage.Store, logger *slog.Logger, reg *prometheus.Registry) (http.Handler, error) {
	sinks := notify.Fanout{notify.NewLogger(logger)}
	mux := http.NewServeMux()

	if cfg.Metrics.Enabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics, err := notify.NewMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		sinks = append(sinks, metrics)
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	if level, _ := logging.ParseLevel(cfg.Log.Level); level == slog.LevelDebug {
		recorder := notify.NewRecorder(debugEventLimit)
		sinks = append(sinks, recorder)
		mux.HandleFunc("/debug/events", debugEventsHandler(recorder))
		logger.Debug("Recording ledger events", "path", "/debug/events", "limit", debugEventLimit)
	}

	l := ledger.New(store, auth.ContextAuthenticator{},
		ledger.WithNotifier(sinks),
		ledger.WithLogger(logger),
	)
	accounts := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	service.Mount(mux, l, accounts, jwtManager, logger)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := l.LastBillID(r.Context()); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	return loggingMiddleware(logger, corsMiddleware(mux)), nil
}

type debugEvent struct {
	Topic   ledger.Topic  `json:"topic"`
	BillID  models.BillID `json:"bill_id"`
	Payload any           `json:"payload"`
}

// debugEventsHandler serves the most recent ledger events, oldest first.
func debugEventsHandler(recorder *notify.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events := recorder.Events()
		out := make([]debugEvent, len(events))
		for i, e := range events {
			out[i] = debugEvent{Topic: e.Topic, BillID: e.BillID, Payload: e.Payload}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			slog.Error("Failed to write debug events", "error", err)
		}
	}
}
