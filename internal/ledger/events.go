package ledger

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Topic names a lifecycle notification.
type Topic string

const (
	TopicBillCreated Topic = "bill_created"
	TopicBillPaid    Topic = "bill_paid"
	TopicBillSettled Topic = "bill_settled"
)

// Event is one lifecycle notification.
//
// Payload depends on the topic:
//   - bill_created: int64 total
//   - bill_paid: models.Principal payer
//   - bill_settled: bool true
type Event struct {
	Topic   Topic
	BillID  models.BillID
	Payload any
}

// Notifier receives lifecycle events. Publish is fire-and-forget: it must not
// block on slow observers and has no way to fail the operation.
type Notifier interface {
	Publish(ctx context.Context, event Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, event Event)

func (f NotifierFunc) Publish(ctx context.Context, event Event) {
	f(ctx, event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(context.Context, Event) {}
