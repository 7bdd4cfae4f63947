package ledger

import (
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

// validateNewBill checks creation arguments in a fixed order; the first failure wins.
func validateNewBill(total int64, participants []models.Principal) error {
	if len(participants) == 0 {
		return ErrInvalidParticipants
	}
	if total <= 0 {
		return ErrInvalidAmount
	}
	seen := make(map[models.Principal]struct{}, len(participants))
	for _, p := range participants {
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// checkPayable reports why payer cannot pay bill, or nil if it can.
func checkPayable(bill *models.Bill, payer models.Principal) error {
	if bill.Settled {
		return ErrAlreadySettled
	}
	paid, ok := bill.Paid[payer]
	if !ok {
		return ErrNotParticipant
	}
	if paid {
		return ErrAlreadyPaid
	}
	return nil
}
