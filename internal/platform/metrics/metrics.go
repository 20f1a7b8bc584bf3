package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HTTPRequestDuration  *prometheus.HistogramVec
	UsersCreated         prometheus.Counter
	BusinessesCreated    prometheus.Counter
	ScoreRecomputations  prometheus.Counter
	FundabilityRejected  prometheus.Counter
	OTPsIssued           prometheus.Counter
	DocumentsUploaded    prometheus.Counter
	CompletionPercentage prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fundready_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundready_users_created_total",
			Help: "Total number of users created.",
		}),
		BusinessesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundready_businesses_created_total",
			Help: "Total number of business profiles created.",
		}),
		ScoreRecomputations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundready_score_recomputations_total",
			Help: "Total number of profile completion recomputations.",
		}),
		FundabilityRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundready_fundability_rejections_total",
			Help: "Funding utility creations rejected by the fundability gate.",
		}),
		OTPsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundready_otps_issued_total",
			Help: "Total number of one-time passwords issued.",
		}),
		DocumentsUploaded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundready_documents_uploaded_total",
			Help: "Total number of document metadata records created.",
		}),
		CompletionPercentage: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fundready_completion_percentage",
			Help:    "Distribution of computed profile completion percentages.",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
	}
}

// ObserveScore records one recomputation and its resulting percentage.
func (m *Metrics) ObserveScore(percent int) {
	m.ScoreRecomputations.Inc()
	m.CompletionPercentage.Observe(float64(percent))
}
