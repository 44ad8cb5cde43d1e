package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics of the roster service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Sync metrics
	SyncTotal         *prometheus.CounterVec
	SyncDuration      prometheus.Histogram
	SnapshotRecords   prometheus.Gauge
	SnapshotTimestamp prometheus.Gauge
	QuarantinedRows   prometheus.Gauge

	// Remote store metrics
	RemoteCalls   *prometheus.CounterVec
	RemoteRetries *prometheus.CounterVec

	// Write and intent metrics
	WritesTotal  *prometheus.CounterVec
	IntentsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates metrics registered in reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SyncTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_sync_total",
				Help: "Total number of sync attempts by result",
			},
			[]string{"result"},
		),

		SyncDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "roster_sync_duration_seconds",
				Help:    "Duration of a full sync from the remote store",
				Buckets: prometheus.DefBuckets,
			},
		),

		SnapshotRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "roster_snapshot_records",
				Help: "Number of records in the current snapshot",
			},
		),

		SnapshotTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "roster_snapshot_timestamp_seconds",
				Help: "Unix time the current snapshot was fetched",
			},
		),

		QuarantinedRows: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "roster_quarantined_rows",
				Help: "Number of remote rows excluded from the current snapshot",
			},
		),

		RemoteCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_remote_calls_total",
				Help: "Total number of remote store calls by operation and result",
			},
			[]string{"operation", "result"},
		),

		RemoteRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_remote_retries_total",
				Help: "Total number of retried remote store calls",
			},
			[]string{"operation"},
		),

		WritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_writes_total",
				Help: "Total number of proposed writes by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		IntentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_intents_total",
				Help: "Total number of resolved questions by outcome",
			},
			[]string{"outcome"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roster_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveSync records one sync attempt.
func (m *Metrics) ObserveSync(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.SyncTotal.WithLabelValues(result(err)).Inc()
	m.SyncDuration.Observe(d.Seconds())
}

// ObserveSnapshot records the shape of a newly published snapshot.
func (m *Metrics) ObserveSnapshot(records, quarantined int, fetchedAt time.Time) {
	if m == nil {
		return
	}
	m.SnapshotRecords.Set(float64(records))
	m.QuarantinedRows.Set(float64(quarantined))
	m.SnapshotTimestamp.Set(float64(fetchedAt.Unix()))
}

// ObserveRemoteCall records a single remote store call attempt.
func (m *Metrics) ObserveRemoteCall(op string, err error) {
	if m == nil {
		return
	}
	m.RemoteCalls.WithLabelValues(op, result(err)).Inc()
}

// ObserveRemoteRetry records a retry of a remote store call.
func (m *Metrics) ObserveRemoteRetry(op string) {
	if m == nil {
		return
	}
	m.RemoteRetries.WithLabelValues(op).Inc()
}

// ObserveWrite records the outcome of a proposed write.
func (m *Metrics) ObserveWrite(kind, outcome string) {
	if m == nil {
		return
	}
	m.WritesTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveIntent records the outcome of a question.
func (m *Metrics) ObserveIntent(outcome string) {
	if m == nil {
		return
	}
	m.IntentsTotal.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records a served HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
