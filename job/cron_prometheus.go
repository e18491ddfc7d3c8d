package job

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	cronJobRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "cronjob",
			Name:      "runs_total",
			Help:      "Cron job runs total.",
		},
		[]string{"job", "result"},
	)
	cronJobDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "cronjob",
			Name:      "duration_seconds",
			Help:      "Cron job duration in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"job"},
	)
)

func init() {
	prometheus.MustRegister(cronJobRunsTotal, cronJobDurationSeconds)
}

func observeJobRun(name string, elapsed time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	cronJobRunsTotal.WithLabelValues(name, result).Inc()
	cronJobDurationSeconds.WithLabelValues(name).Observe(elapsed.Seconds())
}
