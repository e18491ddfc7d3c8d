package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/to404hanga/online_judge_arena/engine/achievement"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

var badgeRuleEvaluationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "arena",
		Subsystem: "badge",
		Name:      "rule_evaluations_total",
		Help:      "Total number of badge rule evaluations",
	},
	[]string{"rule", "result"},
)

func init() {
	prometheus.MustRegister(badgeRuleEvaluationsTotal)
}

// LogBadgeObserver 每条规则输出一条评估记录
type LogBadgeObserver struct {
	log loggerv2.Logger
}

var _ achievement.Observer = (*LogBadgeObserver)(nil)

func NewLogBadgeObserver(log loggerv2.Logger) *LogBadgeObserver {
	return &LogBadgeObserver{log: log}
}

func (o *LogBadgeObserver) ObserveRule(ctx context.Context, r achievement.Record) {
	result := observeResult(r)
	badgeRuleEvaluationsTotal.WithLabelValues(r.RuleID, result).Inc()

	if r.Err != nil {
		o.log.ErrorContext(ctx, "badge rule evaluation failed",
			logger.String("participant_id", r.ParticipantID),
			logger.String("rule_id", r.RuleID),
			logger.Error(r.Err))
		return
	}
	o.log.DebugContext(ctx, "badge rule evaluated",
		logger.String("participant_id", r.ParticipantID),
		logger.String("rule_id", r.RuleID),
		logger.String("result", result))
}

func observeResult(r achievement.Record) string {
	switch {
	case r.Err != nil:
		return "error"
	case r.Skipped:
		return "skipped"
	case r.Satisfied:
		return "satisfied"
	default:
		return "unsatisfied"
	}
}
