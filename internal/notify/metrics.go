package notify

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/splitledger/internal/ledger"
)

var _ ledger.Notifier = (*Metrics)(nil)

// Metrics counts lifecycle events in Prometheus.
type Metrics struct {
	events *prometheus.CounterVec
	amount prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitledger",
			Name:      "bill_events_total",
			Help:      "Ledger lifecycle events by topic.",
		}, []string{"topic"}),
		amount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "splitledger",
			Name:      "bill_amount_total",
			Help:      "Sum of totals of all created bills.",
		}),
	}
	for _, c := range []prometheus.Collector{m.events, m.amount} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	// expose zero values for every topic from the start
	for _, t := range []ledger.Topic{ledger.TopicBillCreated, ledger.TopicBillPaid, ledger.TopicBillSettled} {
		m.events.WithLabelValues(string(t))
	}
	return m, nil
}

func (m *Metrics) Publish(_ context.Context, e ledger.Event) {
	m.events.WithLabelValues(string(e.Topic)).Inc()
	if total, ok := e.Payload.(int64); ok && e.Topic == ledger.TopicBillCreated {
		m.amount.Add(float64(total))
	}
}
