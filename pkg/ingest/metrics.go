package ingest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds prometheus collectors of the ingestion pipeline
type Metrics struct {
	items      *prometheus.CounterVec
	extraction *prometheus.CounterVec
	batches    *prometheus.CounterVec
	duration   prometheus.Histogram
	lastRun    prometheus.Gauge
}

// NewMetrics creates collectors and registers them with reg, nil reg skips registration
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mappin",
			Subsystem: "ingest",
			Name:      "items_total",
			Help:      "Feed items processed by outcome",
		}, []string{"outcome"}),
		extraction: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mappin",
			Subsystem: "ingest",
			Name:      "extractions_total",
			Help:      "Extraction calls by strategy and result",
		}, []string{"strategy", "result"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mappin",
			Subsystem: "ingest",
			Name:      "batches_total",
			Help:      "Ingestion batches by result",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mappin",
			Subsystem: "ingest",
			Name:      "batch_duration_seconds",
			Help:      "Time spent in one ingestion batch",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mappin",
			Subsystem: "ingest",
			Name:      "last_batch_timestamp_seconds",
			Help:      "Unix timestamp of the last finished batch",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.items, m.extraction, m.batches, m.duration, m.lastRun)
	}
	return m
}

func (m *Metrics) item(o outcome) {
	if m == nil {
		return
	}
	m.items.WithLabelValues(string(o)).Inc()
}

func (m *Metrics) extract(strategy, result string) {
	if m == nil {
		return
	}
	m.extraction.WithLabelValues(strategy, result).Inc()
}

func (m *Metrics) batch(result string, d time.Duration, finished time.Time) {
	if m == nil {
		return
	}
	m.batches.WithLabelValues(result).Inc()
	m.duration.Observe(d.Seconds())
	m.lastRun.Set(float64(finished.Unix()))
}
