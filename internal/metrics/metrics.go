package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics holds the metrics of the rate refresh pipeline.
type PipelineMetrics struct {
	// Insecure TLS retries taken by the fetcher, by classified error code
	InsecureFallbackTotal *prometheus.CounterVec

	// Refresh cycles by trigger and result (success|failure)
	RefreshCyclesTotal *prometheus.CounterVec

	// Failed refresh cycles by the stage that aborted them
	RefreshFailuresTotal *prometheus.CounterVec

	RefreshDuration *prometheus.HistogramVec

	LastSuccessTimestamp prometheus.Gauge
}

// NewPipelineMetrics registers the pipeline metrics on reg.
// A nil reg registers on the default prometheus registry.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PipelineMetrics{
		InsecureFallbackTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcv_fetch_insecure_fallback_total",
				Help: "Number of times the BCV fetch was retried without certificate verification",
			},
			[]string{"code"},
		),
		RefreshCyclesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcv_refresh_cycles_total",
				Help: "Number of completed refresh cycles",
			},
			[]string{"trigger", "result"},
		),
		RefreshFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcv_refresh_failures_total",
				Help: "Number of failed refresh cycles by failing stage",
			},
			[]string{"stage"},
		),
		RefreshDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bcv_refresh_duration_seconds",
				Help:    "Duration of refresh cycles",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"result"},
		),
		LastSuccessTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bcv_last_success_timestamp_seconds",
				Help: "Unix time of the last successful refresh cycle",
			},
		),
	}
}

// RecordInsecureFallback counts one insecure retry.
func (m *PipelineMetrics) RecordInsecureFallback(code string) {
	m.InsecureFallbackTotal.WithLabelValues(code).Inc()
}

// RecordRefresh records a finished cycle. failedStage is ignored on success.
func (m *PipelineMetrics) RecordRefresh(trigger string, success bool, failedStage string, duration time.Duration, finishedAt time.Time) {
	result := "failure"
	if success {
		result = "success"
	}
	m.RefreshCyclesTotal.WithLabelValues(trigger, result).Inc()
	m.RefreshDuration.WithLabelValues(result).Observe(duration.Seconds())

	if success {
		m.LastSuccessTimestamp.Set(float64(finishedAt.Unix()))
		return
	}
	m.RefreshFailuresTotal.WithLabelValues(failedStage).Inc()
}
