package achievement

import (
	"context"
	"fmt"
	"sort"

	"github.com/to404hanga/online_judge_arena/model"
)

// Record 单条规则的评估记录
type Record struct {
	ParticipantID string
	RuleID        string
	Skipped       bool // 已持有, 未评估
	Satisfied     bool
	Err           error
}

// Observer 接收每条规则的评估记录
type Observer interface {
	ObserveRule(ctx context.Context, r Record)
}

type ObserverFunc func(ctx context.Context, r Record)

func (f ObserverFunc) ObserveRule(ctx context.Context, r Record) {
	f(ctx, r)
}

type nopObserver struct{}

func (nopObserver) ObserveRule(context.Context, Record) {}

// RuleEvaluationError 单条规则评估失败, 只影响该条规则
type RuleEvaluationError struct {
	RuleID string
	Err    error
}

func (e *RuleEvaluationError) Error() string {
	return fmt.Sprintf("evaluate badge rule %s failed: %v", e.RuleID, e.Err)
}

func (e *RuleEvaluationError) Unwrap() error {
	return e.Err
}

// Evaluator 徽章评估器, 无内部状态
type Evaluator struct {
	catalog  *Catalog
	observer Observer
}

type Option func(*Evaluator)

func WithObserver(o Observer) Option {
	return func(e *Evaluator) {
		if o != nil {
			e.observer = o
		}
	}
}

func NewEvaluator(catalog *Catalog, opts ...Option) *Evaluator {
	e := &Evaluator{
		catalog:  catalog,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}

// EvaluateNewBadges 按目录顺序返回新满足条件且选手尚未持有的徽章定义
func (e *Evaluator) EvaluateNewBadges(ctx context.Context, p *model.Participant, submissions []model.Submission, env Env) []Definition {
	history := OwnHistory(p.ID, submissions)

	var earned []Definition
	for _, def := range e.catalog.defs {
		if p.HasBadge(def.ID) {
			e.observer.ObserveRule(ctx, Record{ParticipantID: p.ID, RuleID: def.ID, Skipped: true})
			continue
		}
		ok, err := evaluate(def, p, history, env)
		e.observer.ObserveRule(ctx, Record{ParticipantID: p.ID, RuleID: def.ID, Satisfied: ok, Err: err})
		if err == nil && ok {
			earned = append(earned, def)
		}
	}
	return earned
}

func evaluate(def Definition, p *model.Participant, history []model.Submission, env Env) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, &RuleEvaluationError{RuleID: def.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	ok, err = def.Predicate(p, history, env)
	if err != nil {
		return false, &RuleEvaluationError{RuleID: def.ID, Err: err}
	}
	return ok, nil
}

// OwnHistory 过滤出属于该选手的提交, 并按 (CreatedAt, Seq, 输入顺序) 稳定排序
func OwnHistory(participantID string, submissions []model.Submission) []model.Submission {
	history := make([]model.Submission, 0, len(submissions))
	for i := range submissions {
		if submissions[i].ParticipantID == participantID {
			history = append(history, submissions[i])
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Before(&history[j])
	})
	return history
}
