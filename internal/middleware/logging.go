package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
)

// RequestIDHeader carries a per-call id back to the client.
const RequestIDHeader = "Request-Id"

type callInfoKey struct{}

// callInfo is filled in by the auth interceptors running inside LoggingInterceptor.
type callInfo struct {
	principal models.Principal
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, principal, duration, and any error codes/messages.
// Install it before the auth interceptors so rejected calls are logged too.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			call := &callInfo{principal: GetPrincipal(ctx)}
			ctx = context.WithValue(ctx, callInfoKey{}, call)
			requestID := req.Header().Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			resp, err := next(ctx, req)
			principal := call.principal // empty for anonymous and rejected calls

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					connectErr.Meta().Set(RequestIDHeader, requestID)
					slog.Warn("RPC error",
						"procedure", procedure,
						"request_id", requestID,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"principal", principal,
						"duration_ms", duration,
					)
				} else {
					slog.Error("RPC error",
						"procedure", procedure,
						"request_id", requestID,
						"error", err,
						"principal", principal,
						"duration_ms", duration,
					)
				}
			} else {
				resp.Header().Set(RequestIDHeader, requestID)
				slog.Info("RPC ok",
					"procedure", procedure,
					"request_id", requestID,
					"principal", principal,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
