package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records codec, batch edit and render activity.
type QuoteMetrics struct {
	decodes     *prometheus.CounterVec
	batchOps    *prometheus.CounterVec
	batchRows   *prometheus.CounterVec
	renderTimes *prometheus.HistogramVec
}

// NewQuoteMetrics registers the quote metrics on the provided registerer. A
// nil registerer yields a no-op recorder.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	decodes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "codec_decode_total",
		Help: "CSV decode attempts by detected format and outcome.",
	}, []string{"format", "outcome"})
	batchOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_operations_total",
		Help: "Committed batch fabric edits.",
	}, []string{"operation"})
	batchRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_rows_changed_total",
		Help: "Rows changed by batch fabric edits.",
	}, []string{"operation"})
	renderTimes := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "render_duration_seconds",
		Help:    "Duration of HTML quote rendering in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"variant"})
	reg.MustRegister(decodes, batchOps, batchRows, renderTimes)
	return &QuoteMetrics{
		decodes:     decodes,
		batchOps:    batchOps,
		batchRows:   batchRows,
		renderTimes: renderTimes,
	}
}

// ObserveDecode counts one CSV decode.
func (m *QuoteMetrics) ObserveDecode(format, outcome string) {
	if m == nil || m.decodes == nil {
		return
	}
	m.decodes.WithLabelValues(normalizeLabel(format), normalizeLabel(outcome)).Inc()
}

// ObserveBatch counts one committed batch edit and the rows it changed.
func (m *QuoteMetrics) ObserveBatch(operation string, rows int) {
	if m == nil || m.batchOps == nil {
		return
	}
	op := normalizeLabel(operation)
	m.batchOps.WithLabelValues(op).Inc()
	if rows > 0 {
		m.batchRows.WithLabelValues(op).Add(float64(rows))
	}
}

// ObserveRender records how long a render took.
func (m *QuoteMetrics) ObserveRender(variant string, d time.Duration) {
	if m == nil || m.renderTimes == nil {
		return
	}
	m.renderTimes.WithLabelValues(normalizeLabel(variant)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
