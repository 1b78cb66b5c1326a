package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterRequests.WithLabelValues("GET", "200").Inc()
	m.CounterSessionsSaved.Inc()
	m.CounterSnapshotJobs.WithLabelValues("updated").Inc()
	m.CounterCacheLookups.WithLabelValues("hit").Inc()
	m.GaugeRequests.Inc()
	m.GaugeSnapshotBacklog.Set(3)
	m.HistRequestDuration.WithLabelValues("/health").Observe(0.01)
	m.HistSnapshotDuration.Observe(0.2)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 8)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterSessionsSaved))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.GaugeSnapshotBacklog))
}

func TestNewTestManager_IsolatedRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = NewTestManager()
		_ = NewTestManager()
	})
}
