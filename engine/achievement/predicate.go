package achievement

import (
	"fmt"
	"time"

	"github.com/to404hanga/online_judge_arena/model"
)

// acceptedProblems 已通过的不同题目
func acceptedProblems(history []model.Submission) map[string]struct{} {
	solved := make(map[string]struct{})
	for i := range history {
		if history[i].Status.IsAccepted() {
			solved[history[i].ProblemID] = struct{}{}
		}
	}
	return solved
}

// MilestoneCount 通过的不同题目数 >= n
func MilestoneCount(n int) Predicate {
	return func(_ *model.Participant, history []model.Submission, _ Env) (bool, error) {
		return len(acceptedProblems(history)) >= n, nil
	}
}

// CategoryCompletion 集合中的每道题都至少通过一次
func CategoryCompletion(problemIDs []string) Predicate {
	targets := make([]string, len(problemIDs))
	copy(targets, problemIDs)
	return func(_ *model.Participant, history []model.Submission, _ Env) (bool, error) {
		if len(targets) == 0 {
			return false, fmt.Errorf("category completion rule has no problems")
		}
		solved := acceptedProblems(history)
		for _, id := range targets {
			if _, ok := solved[id]; !ok {
				return false, nil
			}
		}
		return true, nil
	}
}

// SingleProblem 指定题目至少通过一次
func SingleProblem(problemID string) Predicate {
	return func(_ *model.Participant, history []model.Submission, _ Env) (bool, error) {
		for i := range history {
			if history[i].ProblemID == problemID && history[i].Status.IsAccepted() {
				return true, nil
			}
		}
		return false, nil
	}
}

// Volume 提交总数 >= n, 不区分结果
func Volume(n int) Predicate {
	return func(_ *model.Participant, history []model.Submission, _ Env) (bool, error) {
		return len(history) >= n, nil
	}
}

// FirstAttemptSuccess 存在某道题的首次提交即通过
func FirstAttemptSuccess() Predicate {
	return func(_ *model.Participant, history []model.Submission, _ Env) (bool, error) {
		seen := make(map[string]struct{})
		for i := range history {
			if _, ok := seen[history[i].ProblemID]; ok {
				continue
			}
			seen[history[i].ProblemID] = struct{}{}
			if history[i].Status.IsAccepted() {
				return true, nil
			}
		}
		return false, nil
	}
}

// Polyglot 使用过的不同语言数 >= n, 未标注语言的提交不计入
func Polyglot(n int) Predicate {
	return func(_ *model.Participant, history []model.Submission, _ Env) (bool, error) {
		languages := make(map[string]struct{})
		for i := range history {
			if history[i].Language == "" {
				continue
			}
			languages[history[i].Language] = struct{}{}
		}
		return len(languages) >= n, nil
	}
}

// TimingWindow 存在提交时间落在 [start+from, start+to) 内
// acceptedOnly 为 true 时只统计通过的提交; 未配置比赛开始时间时恒不满足
func TimingWindow(from, to time.Duration, acceptedOnly bool) Predicate {
	return func(_ *model.Participant, history []model.Submission, env Env) (bool, error) {
		if to <= from {
			return false, fmt.Errorf("timing window is empty: from=%s to=%s", from, to)
		}
		if env.CompetitionStart.IsZero() {
			return false, nil
		}
		lo, hi := env.CompetitionStart.Add(from), env.CompetitionStart.Add(to)
		for i := range history {
			if acceptedOnly && !history[i].Status.IsAccepted() {
				continue
			}
			at := history[i].CreatedAt
			if !at.Before(lo) && at.Before(hi) {
				return true, nil
			}
		}
		return false, nil
	}
}

// ScoreThreshold 选手总分 >= n
func ScoreThreshold(n int) Predicate {
	return func(p *model.Participant, _ []model.Submission, _ Env) (bool, error) {
		if p == nil {
			return false, fmt.Errorf("participant is nil")
		}
		return p.Score >= n, nil
	}
}
