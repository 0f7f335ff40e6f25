package prometheus

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

const namespace = "historydoc"

// PrometheusMetricsRepository implements repositories.MetricsRepository with
// Prometheus collectors.
type PrometheusMetricsRepository struct {
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	branchFetches *prom.CounterVec
}

var _ repositories.MetricsRepository = (*PrometheusMetricsRepository)(nil)

// NewPrometheusMetricsRepository constructs the collectors and registers them on reg.
func NewPrometheusMetricsRepository(reg *prom.Registry) *PrometheusMetricsRepository {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	it := &PrometheusMetricsRepository{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "outcome"}),
		branchFetches: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "branch_fetches_total",
			Help:      "Per-branch commit fetches by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(it.stageDuration, it.stageResults, it.branchFetches)
	return it
}

func (it *PrometheusMetricsRepository) RecordStage(stage, outcome string, elapsed time.Duration) {
	it.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	it.stageResults.WithLabelValues(stage, outcome).Inc()
}

func (it *PrometheusMetricsRepository) RecordBranchFetch(outcome string) {
	it.branchFetches.WithLabelValues(outcome).Inc()
}

// HTTPHandler serves the metrics gathered by reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
