// Package ledger 计分账本: 将一次通过的提交折算为选手聚合字段的增量.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/to404hanga/online_judge_arena/model"
)

var ErrProblemNotFound = errors.New("problem not found")

// ProblemNotFoundError 提交引用的题目不在题库中
type ProblemNotFoundError struct {
	ProblemID string
}

func (e *ProblemNotFoundError) Error() string {
	return fmt.Sprintf("problem %s not found", e.ProblemID)
}

func (e *ProblemNotFoundError) Is(target error) bool {
	return target == ErrProblemNotFound
}

// ProblemResolver 题库查询
type ProblemResolver interface {
	Problem(id string) (model.Problem, bool)
}

// Delta 选手聚合字段的增量, 零值表示无需更新
type Delta struct {
	ParticipantID  string
	ProblemID      string
	SubmissionID   string
	Score          int
	SolvedProblems int
	PenaltyMinutes int
	SolvedAt       time.Time
}

func (d Delta) IsZero() bool {
	return d.Score == 0 && d.SolvedProblems == 0 && d.PenaltyMinutes == 0
}

// ApplyTo 将增量累加到选手快照上
func (d Delta) ApplyTo(p *model.Participant) {
	p.Score += d.Score
	p.SolvedProblems += d.SolvedProblems
	p.PenaltyTime += d.PenaltyMinutes
}

// SolvedMarker 对应 (participant, problem) 唯一的首次通过记录
func (d Delta) SolvedMarker() model.SolvedProblem {
	return model.SolvedProblem{
		ParticipantID:  d.ParticipantID,
		ProblemID:      d.ProblemID,
		SubmissionID:   d.SubmissionID,
		Points:         d.Score,
		PenaltyMinutes: d.PenaltyMinutes,
		SolvedAt:       d.SolvedAt,
	}
}

type Ledger struct {
	problems            ProblemResolver
	competitionStart    time.Time
	wrongAttemptPenalty int // 分钟
}

type Option func(*Ledger)

// WithCompetitionStart 罚时起算点, 零值时罚时恒为 0
func WithCompetitionStart(start time.Time) Option {
	return func(l *Ledger) {
		l.competitionStart = start
	}
}

// WithWrongAttemptPenalty 首次通过前每次错误提交额外累加的罚时(分钟)
func WithWrongAttemptPenalty(minutes int) Option {
	return func(l *Ledger) {
		if minutes > 0 {
			l.wrongAttemptPenalty = minutes
		}
	}
}

func New(problems ProblemResolver, opts ...Option) *Ledger {
	l := &Ledger{problems: problems}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ApplyAcceptedSubmission 计算一次提交带来的增量
//
// 仅当提交通过, 且 prior 中不存在同一选手同一题目更早的通过提交时返回非零增量.
// prior 可以包含 sub 本身以及晚于 sub 的提交, 二者都会被忽略.
func (l *Ledger) ApplyAcceptedSubmission(p *model.Participant, sub *model.Submission, prior []model.Submission) (Delta, error) {
	problem, ok := l.problems.Problem(sub.ProblemID)
	if !ok {
		return Delta{}, &ProblemNotFoundError{ProblemID: sub.ProblemID}
	}
	if p.ID != sub.ParticipantID {
		return Delta{}, fmt.Errorf("submission %s belongs to %s, not %s", sub.ID, sub.ParticipantID, p.ID)
	}
	if !sub.Status.IsAccepted() {
		return Delta{}, nil
	}

	wrongAttempts := 0
	for i := range prior {
		s := &prior[i]
		if s.ParticipantID != sub.ParticipantID || s.ProblemID != sub.ProblemID || s.ID == sub.ID {
			continue
		}
		if !s.Before(sub) {
			continue
		}
		if s.Status.IsAccepted() {
			return Delta{}, nil
		}
		if s.Status != model.SubmissionStatusCompilationError {
			wrongAttempts++
		}
	}

	return Delta{
		ParticipantID:  p.ID,
		ProblemID:      problem.ID,
		SubmissionID:   sub.ID,
		Score:          problem.Points,
		SolvedProblems: 1,
		PenaltyMinutes: l.elapsedMinutes(sub.CreatedAt) + wrongAttempts*l.wrongAttemptPenalty,
		SolvedAt:       sub.CreatedAt,
	}, nil
}

// Resolves 题目是否在题库中
func (l *Ledger) Resolves(problemID string) bool {
	_, ok := l.problems.Problem(problemID)
	return ok
}

// Outstanding 找出已通过但尚未入账的题目, 每题按最早的通过提交计算增量
//
// solved 为已有首次通过记录的题目. 题库中不存在的题目被跳过, 对应错误合并后返回,
// 其余题目的增量照常返回.
func (l *Ledger) Outstanding(p *model.Participant, history []model.Submission, solved map[string]struct{}) ([]Delta, error) {
	own := make([]model.Submission, 0, len(history))
	for i := range history {
		if history[i].ParticipantID == p.ID {
			own = append(own, history[i])
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].Before(&own[j]) })

	seen := make(map[string]struct{}, len(solved))
	for id := range solved {
		seen[id] = struct{}{}
	}
	var (
		deltas []Delta
		errs   []error
	)
	for i := range own {
		sub := &own[i]
		if !sub.Status.IsAccepted() {
			continue
		}
		if _, ok := seen[sub.ProblemID]; ok {
			continue
		}
		seen[sub.ProblemID] = struct{}{}
		d, err := l.ApplyAcceptedSubmission(p, sub, own)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !d.IsZero() {
			deltas = append(deltas, d)
		}
	}
	return deltas, errors.Join(errs...)
}

// elapsedMinutes 距比赛开始的整分钟数, 向下取整且不小于 0
func (l *Ledger) elapsedMinutes(at time.Time) int {
	if l.competitionStart.IsZero() || at.Before(l.competitionStart) {
		return 0
	}
	return int(at.Sub(l.competitionStart) / time.Minute)
}
