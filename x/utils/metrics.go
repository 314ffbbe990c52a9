package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts delivered transactions by message path
// and result code, and observes how long their processing took.
// Check calls are not measured.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ settle.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors with
// given registerer. Registration fails if the collectors were already
// registered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settle",
			Name:      "tx_total",
			Help:      "Number of delivered transactions.",
		}, []string{"path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "settle",
			Name:      "tx_duration_seconds",
			Help:      "Time spent delivering a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path"}),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(errors.ErrHuman, "register collector: %s", err)
		}
	}
	return m, nil
}

// Check passes the transaction through.
func (m *Metrics) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Checker) (*settle.CheckResult, error) {
	return next.Check(ctx, store, tx)
}

// Deliver records the result of processing the transaction.
func (m *Metrics) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Deliverer) (*settle.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)

	path := settle.GetPath(tx)
	var code uint32
	if err != nil {
		code, _ = errors.ABCIInfo(err, false)
	}
	m.total.WithLabelValues(path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	return res, err
}
