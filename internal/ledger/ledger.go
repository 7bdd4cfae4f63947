// Package ledger implements the bill lifecycle: creation, per-participant
// payment and settlement. It owns every bill and the bill counter in the store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const defaultListLimit = 100

// BillLedger runs every operation as one serialized unit of work against the store.
type BillLedger struct {
	mu       sync.Mutex
	store    storage.KeyedStore
	auth     Authenticator
	notifier Notifier
	logger   *slog.Logger
}

// Option configures a BillLedger.
type Option func(*BillLedger)

// WithNotifier sets the sink for lifecycle events. Without it events are dropped.
func WithNotifier(n Notifier) Option {
	return func(l *BillLedger) {
		l.notifier = n
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *BillLedger) {
		l.logger = logger
	}
}

// New creates a ledger over store, proving callers with auth.
// If store implements storage.Updater every operation runs inside Update.
func New(store storage.KeyedStore, auth Authenticator, opts ...Option) *BillLedger {
	l := &BillLedger{
		store:    store,
		auth:     auth,
		notifier: nopNotifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// BillEntry pairs a bill with its id.
type BillEntry struct {
	ID   models.BillID
	Bill *models.Bill
}

// CreateBill registers a bill from creator split evenly among participants and
// returns its id.
func (l *BillLedger) CreateBill(ctx context.Context, creator models.Principal, total int64, participants []models.Principal) (models.BillID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.auth.Require(ctx, creator); err != nil {
		l.logger.Debug("CreateBill rejected", "creator", creator, "error", err)
		return 0, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if err := validateNewBill(total, participants); err != nil {
		l.logger.Debug("CreateBill rejected", "creator", creator, "error", err)
		return 0, err
	}

	bill := models.NewBill(creator, total, participants)

	var id models.BillID
	err := l.unit(ctx, func(kv storage.KeyedStore) error {
		last, err := readCounter(ctx, kv)
		if err != nil {
			return err
		}
		if last == math.MaxUint32 {
			return ErrBillIDExhausted
		}
		id = models.BillID(last + 1)

		if err := kv.Set(ctx, storage.BillKey(uint32(id)), bill); err != nil {
			return fmt.Errorf("failed to write bill %d: %w", id, err)
		}
		if err := kv.Set(ctx, storage.BillCounterKey(), uint32(id)); err != nil {
			return fmt.Errorf("failed to write bill counter: %w", err)
		}
		return nil
	})
	if err != nil {
		l.logger.Error("CreateBill failed", "creator", creator, "error", err)
		return 0, err
	}

	l.logger.Info("Bill created",
		"bill_id", id,
		"creator", creator,
		"total", total,
		"share", bill.Share,
		"participants", len(participants),
	)
	l.notifier.Publish(ctx, Event{Topic: TopicBillCreated, BillID: id, Payload: total})
	return id, nil
}

// PayBill marks payer's share of the bill as paid and reports whether this
// payment settled the bill. The payment that completes the last outstanding
// share settles it.
func (l *BillLedger) PayBill(ctx context.Context, billID models.BillID, payer models.Principal) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.auth.Require(ctx, payer); err != nil {
		l.logger.Debug("PayBill rejected", "bill_id", billID, "payer", payer, "error", err)
		return false, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	var settled bool
	err := l.unit(ctx, func(kv storage.KeyedStore) error {
		bill, err := readBill(ctx, kv, billID)
		if err != nil {
			return err
		}
		if err := checkPayable(bill, payer); err != nil {
			return err
		}

		bill.Paid[payer] = true
		if bill.AllPaid() {
			bill.Settled = true
			settled = true
		}

		if err := kv.Set(ctx, storage.BillKey(uint32(billID)), bill); err != nil {
			return fmt.Errorf("failed to write bill %d: %w", billID, err)
		}
		return nil
	})
	if err != nil {
		if ErrorKind(err) != "" {
			l.logger.Debug("PayBill rejected", "bill_id", billID, "payer", payer, "error", err)
		} else {
			l.logger.Error("PayBill failed", "bill_id", billID, "payer", payer, "error", err)
		}
		return false, err
	}

	l.logger.Info("Bill paid", "bill_id", billID, "payer", payer, "settled", settled)
	if settled {
		l.notifier.Publish(ctx, Event{Topic: TopicBillSettled, BillID: billID, Payload: true})
	}
	l.notifier.Publish(ctx, Event{Topic: TopicBillPaid, BillID: billID, Payload: payer})
	return settled, nil
}

// GetBill returns a copy of the bill. Reads are not authenticated.
func (l *BillLedger) GetBill(ctx context.Context, billID models.BillID) (*models.Bill, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return readBill(ctx, l.store, billID)
}

// ListBills returns up to limit bills with ids greater than after, in id order.
// A limit <= 0 uses the default page size. Reads are not authenticated.
func (l *BillLedger) ListBills(ctx context.Context, after models.BillID, limit int) ([]BillEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	last, err := readCounter(ctx, l.store)
	if err != nil {
		return nil, err
	}

	var entries []BillEntry
	for id := uint64(after) + 1; id <= uint64(last) && len(entries) < limit; id++ {
		bill, err := readBill(ctx, l.store, models.BillID(id))
		if errors.Is(err, ErrBillNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, BillEntry{ID: models.BillID(id), Bill: bill})
	}
	return entries, nil
}

// LastBillID returns the most recently assigned id, 0 if no bill exists.
func (l *BillLedger) LastBillID(ctx context.Context) (models.BillID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	last, err := readCounter(ctx, l.store)
	return models.BillID(last), err
}

// Balances aggregates the unpaid shares of every bill into per-principal
// balances and the transfers that would clear them. The creator of a bill is
// owed every unpaid share but their own. Reads are not authenticated.
func (l *BillLedger) Balances(ctx context.Context) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	last, err := readCounter(ctx, l.store)
	if err != nil {
		return nil, nil, err
	}

	var bills []calculator.BillForBalance
	for id := uint64(1); id <= uint64(last); id++ {
		bill, err := readBill(ctx, l.store, models.BillID(id))
		if errors.Is(err, ErrBillNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		paid := make(map[string]bool, len(bill.Paid))
		for p, ok := range bill.Paid {
			paid[string(p)] = ok
		}
		bills = append(bills, calculator.BillForBalance{
			Creator: string(bill.Creator),
			Share:   bill.Share,
			Paid:    paid,
		})
	}

	members, debts := calculator.CalculateBalances(bills)
	return members, debts, nil
}

// unit runs fn as one indivisible step, using the store's own transactions when it has them.
func (l *BillLedger) unit(ctx context.Context, fn func(kv storage.KeyedStore) error) error {
	if u, ok := l.store.(storage.Updater); ok {
		return u.Update(ctx, fn)
	}
	return fn(l.store)
}

func readCounter(ctx context.Context, kv storage.KeyedStore) (uint32, error) {
	var last uint32
	if _, err := kv.Get(ctx, storage.BillCounterKey(), &last); err != nil {
		return 0, fmt.Errorf("failed to read bill counter: %w", err)
	}
	return last, nil
}

func readBill(ctx context.Context, kv storage.KeyedStore, billID models.BillID) (*models.Bill, error) {
	bill := &models.Bill{}
	found, err := kv.Get(ctx, storage.BillKey(uint32(billID)), bill)
	if err != nil {
		return nil, fmt.Errorf("failed to read bill %d: %w", billID, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrBillNotFound, billID)
	}
	return bill, nil
}
