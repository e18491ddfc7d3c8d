package web

import "github.com/prometheus/client_golang/prometheus"

var (
	submitSolutionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "submission",
			Name:      "submit_solution_requests_total",
			Help:      "SubmitSolution requests total.",
		},
		[]string{"code", "status", "language"},
	)
	submitSolutionDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "submission",
			Name:      "submit_solution_duration_seconds",
			Help:      "SubmitSolution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "status", "language"},
	)
	getMySubmissionListRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "submission",
			Name:      "get_my_submission_list_requests_total",
			Help:      "GetMySubmissionList requests total.",
		},
		[]string{"code"},
	)
)

func init() {
	prometheus.MustRegister(
		submitSolutionRequestsTotal,
		submitSolutionDurationSeconds,
		getMySubmissionListRequestsTotal,
	)
}
