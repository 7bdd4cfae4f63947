package ledger

import "errors"

// Every failed precondition maps to exactly one of these.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidParticipants  = errors.New("participant list must not be empty")
	ErrInvalidAmount        = errors.New("total must be positive")
	ErrDuplicateParticipant = errors.New("duplicate participant")
	ErrBillNotFound         = errors.New("bill not found")
	ErrNotParticipant       = errors.New("payer is not a participant")
	ErrAlreadyPaid          = errors.New("participant already paid")
	ErrAlreadySettled       = errors.New("bill already settled")
)

// ErrBillIDExhausted means the 32-bit id space is used up. It is a store
// condition rather than a caller mistake.
var ErrBillIDExhausted = errors.New("bill id space exhausted")

var kinds = []struct {
	err  error
	name string
}{
	{ErrUnauthorized, "Unauthorized"},
	{ErrInvalidParticipants, "InvalidParticipants"},
	{ErrInvalidAmount, "InvalidAmount"},
	{ErrDuplicateParticipant, "DuplicateParticipant"},
	{ErrBillNotFound, "BillNotFound"},
	{ErrNotParticipant, "NotParticipant"},
	{ErrAlreadyPaid, "AlreadyPaid"},
	{ErrAlreadySettled, "AlreadySettled"},
}

// ErrorKind returns the taxonomy name of err, or "" when err is not a ledger error.
func ErrorKind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// ErrorFromKind is the inverse of ErrorKind. It returns nil for unknown names.
func ErrorFromKind(name string) error {
	for _, k := range kinds {
		if k.name == name {
			return k.err
		}
	}
	return nil
}
