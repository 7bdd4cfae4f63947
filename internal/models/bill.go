package models

import "github.com/mmynk/splitledger/internal/calculator"

// Principal identifies an external identity a caller acts as.
// Comparison is exact: "alice" and "Alice" are different principals.
type Principal string

// BillID is the sequential identifier assigned to a bill at creation.
// IDs start at 1 and are never reused.
type BillID uint32

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	BillStatusOpen    BillStatus = "open"
	BillStatusSettled BillStatus = "settled"
)

// Bill represents one expense split evenly among a fixed set of participants.
// Everything except Paid and Settled is fixed at creation.
type Bill struct {
	// Creator is the principal that registered the bill.
	Creator Principal `cbor:"1,keyasint" json:"creator"`

	// Total is the full expense amount. Always positive.
	Total int64 `cbor:"2,keyasint" json:"total"`

	// Share is Total divided by the participant count, truncated.
	// Any remainder is not owed by anyone.
	Share int64 `cbor:"3,keyasint" json:"share"`

	// Participants is the ordered list of distinct principals splitting the bill.
	Participants []Principal `cbor:"4,keyasint" json:"participants"`

	// Paid records whether each participant has paid their share.
	// Its keys are exactly the participants.
	Paid map[Principal]bool `cbor:"5,keyasint" json:"paid"`

	// Settled becomes true once every participant has paid. It never reverts.
	Settled bool `cbor:"6,keyasint" json:"settled"`
}

// NewBill builds an open bill with an equal share per participant and every
// participant marked unpaid. Callers validate the inputs first.
func NewBill(creator Principal, total int64, participants []Principal) *Bill {
	paid := make(map[Principal]bool, len(participants))
	for _, p := range participants {
		paid[p] = false
	}
	share, _ := calculator.EqualShare(total, len(participants))
	return &Bill{
		Creator:      creator,
		Total:        total,
		Share:        share,
		Participants: append([]Principal(nil), participants...),
		Paid:         paid,
	}
}

// IsParticipant reports whether p is one of the bill's participants.
func (b *Bill) IsParticipant(p Principal) bool {
	_, ok := b.Paid[p]
	return ok
}

// AllPaid reports whether every participant has paid.
func (b *Bill) AllPaid() bool {
	for _, p := range b.Participants {
		if !b.Paid[p] {
			return false
		}
	}
	return true
}

// PaidCount returns the number of participants that have paid.
func (b *Bill) PaidCount() int {
	n := 0
	for _, p := range b.Participants {
		if b.Paid[p] {
			n++
		}
	}
	return n
}

// Outstanding returns the participants that have not paid yet, in participant order.
func (b *Bill) Outstanding() []Principal {
	var out []Principal
	for _, p := range b.Participants {
		if !b.Paid[p] {
			out = append(out, p)
		}
	}
	return out
}

// Remainder is the part of Total lost to truncating division.
func (b *Bill) Remainder() int64 {
	if len(b.Participants) == 0 {
		return b.Total
	}
	_, remainder := calculator.EqualShare(b.Total, len(b.Participants))
	return remainder
}

// Status returns the lifecycle state derived from Settled.
func (b *Bill) Status() BillStatus {
	if b.Settled {
		return BillStatusSettled
	}
	return BillStatusOpen
}

// Clone returns a deep copy so callers cannot alias stored state.
func (b *Bill) Clone() *Bill {
	c := *b
	c.Participants = append([]Principal(nil), b.Participants...)
	c.Paid = make(map[Principal]bool, len(b.Paid))
	for k, v := range b.Paid {
		c.Paid[k] = v
	}
	return &c
}
