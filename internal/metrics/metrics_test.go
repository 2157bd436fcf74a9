package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/staffstore/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m := metrics.NewMetrics(reg)

	require.NotNil(t, m.DBQueryDuration)
	require.NotNil(t, m.DBQueries)
}

func TestObserveQuery(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.ObserveQuery("find_employee_by_id", 0.01, nil)
	m.ObserveQuery("find_employee_by_id", 0.02, nil)
	m.ObserveQuery("find_employee_by_id", 0.03, assert.AnError)

	assert.InDelta(t, 2, testutil.ToFloat64(m.DBQueries.WithLabelValues("find_employee_by_id", metrics.StatusSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.DBQueries.WithLabelValues("find_employee_by_id", metrics.StatusFailure)), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryDuration))
}

func TestObserveQuery_NilMetrics(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveQuery("count_employees", 0.1, nil)
	})
}
