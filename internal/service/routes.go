package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
)

// Mount registers the ledger and auth services on mux.
// Writes require a bearer token, reads accept one but do not need it.
// Logging wraps authentication so rejected calls are logged with a request id.
func Mount(mux *http.ServeMux, l *ledger.BillLedger, accounts *auth.PasswordAuthenticator, jwtManager *auth.JWTManager, logger *slog.Logger) {
	logging := middleware.LoggingInterceptor()

	ledgerPath, ledgerHandler := NewLedgerService(l).Handler(
		[]connect.HandlerOption{connect.WithInterceptors(logging, middleware.RequireAuth(jwtManager))},
		[]connect.HandlerOption{connect.WithInterceptors(logging, middleware.OptionalAuth(jwtManager))},
	)
	mux.Handle(ledgerPath, ledgerHandler)

	authPath, authHandler := NewAuthService(accounts, jwtManager, logger).Handler(
		connect.WithInterceptors(logging),
	)
	mux.Handle(authPath, authHandler)
}
