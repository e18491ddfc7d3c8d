package web

import "github.com/prometheus/client_golang/prometheus"

var (
	getLeaderboardRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "leaderboard",
			Name:      "get_leaderboard_requests_total",
			Help:      "GetLeaderboard requests total.",
		},
		[]string{"code", "sort_by"},
	)
	getLeaderboardDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "leaderboard",
			Name:      "get_leaderboard_duration_seconds",
			Help:      "GetLeaderboard duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "sort_by"},
	)
	liveLeaderboardConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "arena",
			Subsystem: "leaderboard",
			Name:      "live_connections",
			Help:      "Open LiveLeaderboard websocket connections.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		getLeaderboardRequestsTotal,
		getLeaderboardDurationSeconds,
		liveLeaderboardConnections,
	)
}
