package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the collectors shared by the repositories and the monitoring server.
type Metrics struct {
	DBQueryDuration *prometheus.HistogramVec
	DBQueries       *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance and registers its collectors with reg.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffstore_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'save_employee', 'find_employee_by_email'
		DBQueries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffstore_db_queries_total",
			Help: "Total number of database queries by type and outcome.",
		}, []string{"query_type", "status"}),
	}
}

// ObserveQuery records the duration and outcome of a single repository query.
func (m *Metrics) ObserveQuery(queryType string, seconds float64, err error) {
	if m == nil {
		return
	}

	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}

	m.DBQueryDuration.WithLabelValues(queryType).Observe(seconds)
	m.DBQueries.WithLabelValues(queryType, status).Inc()
}
