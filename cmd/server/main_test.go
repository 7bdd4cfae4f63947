package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage/memory"
	"github.com/mmynk/splitledger/pkg/api"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenAddr: ":0",
		Store:      config.StoreConfig{Driver: config.DriverMemory},
		Auth:       config.AuthConfig{JWTSecret: "0123456789abcdef0123", TokenTTL: time.Hour},
		Metrics:    config.MetricsConfig{Enabled: true},
	}
}

func TestHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler, err := newHandler(testConfig(), memory.New(), logger, prometheus.NewRegistry())
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx := context.Background()
	client := service.NewClient(http.DefaultClient, server.URL)
	session, err := client.Register(ctx, &api.RegisterRequest{
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    "correct horse",
	})
	require.NoError(t, err)
	client.Token = session.Token

	created, err := client.CreateBill(ctx, &api.CreateBillRequest{
		Creator:      session.Principal,
		Total:        50,
		Participants: []string{session.Principal},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, created.BillID)

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Contains(t, string(body), `splitledger_bill_events_total{topic="bill_created"} 1`)
	require.Contains(t, string(body), "splitledger_bill_amount_total 50")
}

func TestHandler_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	handler, err := newHandler(cfg, memory.New(), slog.Default(), prometheus.NewRegistry())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DebugEvents(t *testing.T) {
	cfg := testConfig()
	cfg.Log.Level = "debug"
	handler, err := newHandler(cfg, memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	defer server.Close()

	ctx := context.Background()
	client := service.NewClient(http.DefaultClient, server.URL)
	session, err := client.Register(ctx, &api.RegisterRequest{Email: "bob@example.com", DisplayName: "Bob", Password: "correct horse"})
	require.NoError(t, err)
	client.Token = session.Token
	_, err = client.CreateBill(ctx, &api.CreateBillRequest{Creator: session.Principal, Total: 10, Participants: []string{session.Principal}})
	require.NoError(t, err)
	_, err = client.PayBill(ctx, &api.PayBillRequest{BillID: 1, Payer: session.Principal})
	require.NoError(t, err)

	resp, err := http.Get(server.URL + "/debug/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var events []struct {
		Topic  string `json:"topic"`
		BillID uint32 `json:"bill_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	require.Len(t, events, 3)
	require.Equal(t, "bill_created", events[0].Topic)
	require.Equal(t, "bill_settled", events[1].Topic)
	require.Equal(t, "bill_paid", events[2].Topic)
	require.EqualValues(t, 1, events[2].BillID)
}

func TestHandler_DebugEventsOnlyAtDebugLevel(t *testing.T) {
	handler, err := newHandler(testConfig(), memory.New(), slog.Default(), prometheus.NewRegistry())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/events", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/splitledger.v1.LedgerService/CreateBill", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), "Authorization"))
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	for _, driver := range []string{config.DriverSQLite, config.DriverBolt, config.DriverMemory} {
		t.Run(driver, func(t *testing.T) {
			store, err := openStore(config.StoreConfig{Driver: driver, Path: dir + "/" + driver + ".db"})
			require.NoError(t, err)
			require.NoError(t, store.Close())
		})
	}

	_, err := openStore(config.StoreConfig{Driver: "redis"})
	require.Error(t, err)
}
