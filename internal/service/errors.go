package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/pkg/api"
)

// ledgerError converts a ledger error into a Connect error carrying the
// ledger error kind in the api.ErrorKindHeader metadata.
func ledgerError(err error) *connect.Error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		code = connect.CodePermissionDenied
	case errors.Is(err, ledger.ErrInvalidParticipants),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrDuplicateParticipant):
		code = connect.CodeInvalidArgument
	case errors.Is(err, ledger.ErrBillNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, ledger.ErrNotParticipant):
		code = connect.CodePermissionDenied
	case errors.Is(err, ledger.ErrAlreadyPaid),
		errors.Is(err, ledger.ErrAlreadySettled):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, ledger.ErrBillIDExhausted):
		code = connect.CodeResourceExhausted
	}

	connectErr := connect.NewError(code, err)
	if kind := ledger.ErrorKind(err); kind != "" {
		connectErr.Meta().Set(api.ErrorKindHeader, kind)
	}
	return connectErr
}

// LedgerErrorFrom recovers the ledger sentinel from an error returned by a
// Connect client, so callers can use errors.Is across the wire.
// It returns nil when err does not carry a ledger error kind.
func LedgerErrorFrom(err error) error {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return nil
	}
	return ledger.ErrorFromKind(connectErr.Meta().Get(api.ErrorKindHeader))
}
