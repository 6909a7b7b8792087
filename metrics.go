package zkchain

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelResult = "result"
	labelRule   = "rule"

	resultAccepted = "accepted"
	resultRejected = "rejected"

	unknownRule = "unknown"
)

// Metrics records validation statistics. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	blocks       *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	transactions prometheus.Counter
	duration     prometheus.Histogram
}

// NewMetrics creates validation metrics registered with reg. If reg is nil,
// metrics are created but not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		blocks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zkchain_validated_blocks",
			Help: "the number of validated blocks by result",
		}, []string{labelResult}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zkchain_rejected_blocks",
			Help: "the number of rejected blocks by violated rule",
		}, []string{labelRule}),
		transactions: factory.NewCounter(prometheus.CounterOpts{
			Name: "zkchain_verified_transactions",
			Help: "the number of verified transactions in accepted blocks",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "zkchain_validation_duration_seconds",
			Help:    "block validation latency",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		}),
	}
}

func (m *Metrics) observe(txs int, d time.Duration, err error) {
	if m == nil {
		return
	}

	m.duration.Observe(d.Seconds())
	if err != nil {
		m.blocks.WithLabelValues(resultRejected).Inc()
		m.rejections.WithLabelValues(ruleName(err)).Inc()
		return
	}

	m.blocks.WithLabelValues(resultAccepted).Inc()
	m.transactions.Add(float64(txs))
}

// ruleName returns the name of the rule violated by err.
func ruleName(err error) string {
	var rule RuleError
	if errors.As(err, &rule) {
		return rule.message
	}
	return unknownRule
}
