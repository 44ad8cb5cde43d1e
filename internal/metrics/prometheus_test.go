package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSync(time.Second, nil)
	m.ObserveSync(time.Second, errors.New("boom"))
	m.ObserveSnapshot(5, 1, time.Unix(1700000000, 0))
	m.ObserveWrite("update", "committed")
	m.ObserveIntent("unrecognized")
	m.ObserveHTTP("GET", "/api/v1/search", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncTotal.WithLabelValues("error")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.SnapshotRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuarantinedRows))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.SnapshotTimestamp))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WritesTotal.WithLabelValues("update", "committed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IntentsTotal.WithLabelValues("unrecognized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/search", "4xx")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSync(time.Second, nil)
		m.ObserveSnapshot(1, 0, time.Now())
		m.ObserveRemoteCall("fetch", nil)
		m.ObserveRemoteRetry("fetch")
		m.ObserveWrite("create", "committed")
		m.ObserveIntent("ok")
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
}
