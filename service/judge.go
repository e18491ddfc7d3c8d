package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/to404hanga/online_judge_arena/model"
)

// Verdict 模拟评测结果
type Verdict struct {
	Status      model.SubmissionStatus
	TestsPassed int
	TestsTotal  int
}

// JudgeService 模拟评测, 不编译不执行代码
type JudgeService interface {
	Judge(ctx context.Context, problem model.Problem, code, language string) Verdict
}

type SimulatedJudgeService struct {
	mu         sync.Mutex
	rng        *rand.Rand
	acceptRate float64
}

var _ JudgeService = (*SimulatedJudgeService)(nil)

const defaultAcceptRate = 0.6

func NewSimulatedJudgeService(rng *rand.Rand, acceptRate float64) *SimulatedJudgeService {
	if acceptRate <= 0 || acceptRate > 1 {
		acceptRate = defaultAcceptRate
	}
	return &SimulatedJudgeService{
		rng:        rng,
		acceptRate: acceptRate,
	}
}

var infiniteLoopMarkers = []string{"while(true)", "while (true)", "while true:", "for(;;)", "for (;;)", "loop {}"}

// Judge 先按启发式规则判定编译错误与超时, 其余按通过率随机
func (j *SimulatedJudgeService) Judge(ctx context.Context, problem model.Problem, code, language string) Verdict {
	total := problem.TestCases
	if total <= 0 {
		total = 1
	}

	trimmed := strings.TrimSpace(code)
	if trimmed == "" || !balanced(trimmed) {
		return Verdict{Status: model.SubmissionStatusCompilationError, TestsTotal: total}
	}
	for _, marker := range infiniteLoopMarkers {
		if strings.Contains(trimmed, marker) && !strings.Contains(trimmed, "break") && !strings.Contains(trimmed, "return") {
			return Verdict{Status: model.SubmissionStatusTimeLimitExceeded, TestsTotal: total}
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.rng.Float64() < j.acceptRate {
		return Verdict{Status: model.SubmissionStatusAccepted, TestsPassed: total, TestsTotal: total}
	}
	passed := j.rng.Intn(total)
	status := model.SubmissionStatusWrongAnswer
	if j.rng.Intn(4) == 0 {
		status = model.SubmissionStatusRuntimeError
	}
	return Verdict{Status: status, TestsPassed: passed, TestsTotal: total}
}

// balanced 括号是否成对, 忽略字符串字面量
func balanced(code string) bool {
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	var stack []rune
	var quote rune
	escaped := false
	for _, r := range code {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'', '`':
			quote = r
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}
