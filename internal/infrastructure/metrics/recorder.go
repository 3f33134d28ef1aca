package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements service.DegradationRecorder on Prometheus counters,
// so vocabulary drift and model trouble show up on dashboards instead of
// only in logs.
type Recorder struct {
	unseenCategories  *prometheus.CounterVec
	scoringDegraded   prometheus.Counter
	auditLogFallbacks prometheus.Counter
}

// NewRecorder registers the degradation counters with the given registerer.
// Pass prometheus.DefaultRegisterer in the service binary.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		unseenCategories: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_prediction_unseen_categories_total",
			Help: "Categorical values encoded with a fallback code, by feature.",
		}, []string{"feature"}),
		scoringDegraded: factory.NewCounter(prometheus.CounterOpts{
			Name: "risk_prediction_scoring_degraded_total",
			Help: "Predictions that took the default score because the model failed.",
		}),
		auditLogFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "risk_prediction_audit_log_fallbacks_total",
			Help: "Audit log records scored with the fallback because mapping failed.",
		}),
	}
}

func (r *Recorder) UnseenCategory(feature string) {
	r.unseenCategories.WithLabelValues(feature).Inc()
}

func (r *Recorder) ScoringDegraded() {
	r.scoringDegraded.Inc()
}

func (r *Recorder) AuditLogFallback() {
	r.auditLogFallbacks.Inc()
}
