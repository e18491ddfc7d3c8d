package achievement

import (
	"fmt"
	"time"
)

type RuleKind string

const (
	KindMilestone          RuleKind = "milestone"
	KindCategoryCompletion RuleKind = "category_completion"
	KindSingleProblem      RuleKind = "single_problem"
	KindVolume             RuleKind = "volume"
	KindFirstAttempt       RuleKind = "first_attempt"
	KindPolyglot           RuleKind = "polyglot"
	KindTimingWindow       RuleKind = "timing_window"
	KindScoreThreshold     RuleKind = "score_threshold"
)

// RuleSpec 声明式的徽章规则, 可以直接从配置加载
type RuleSpec struct {
	ID          string   `mapstructure:"id"`
	Name        string   `mapstructure:"name"`
	Description string   `mapstructure:"description"`
	Icon        string   `mapstructure:"icon"`
	Category    string   `mapstructure:"category"`
	Rarity      string   `mapstructure:"rarity"`
	Kind        RuleKind `mapstructure:"kind"`

	Threshold    int      `mapstructure:"threshold"`
	ProblemID    string   `mapstructure:"problemId"`
	ProblemIDs   []string `mapstructure:"problemIds"`
	ChallengeSet string   `mapstructure:"challengeSet"` // category_completion 可引用题目集合名

	WindowFromMinutes int  `mapstructure:"windowFromMinutes"`
	WindowToMinutes   int  `mapstructure:"windowToMinutes"`
	AnyVerdict        bool `mapstructure:"anyVerdict"`
}

// SetResolver 将题目集合名解析为题目 id 列表
type SetResolver interface {
	ProblemIDsOfSet(name string) ([]string, bool)
}

// Build 根据规则声明构造徽章定义
func (s RuleSpec) Build(sets SetResolver) (Definition, error) {
	rarity, err := ParseRarity(s.Rarity)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: rule %s: %v", ErrInvalidRule, s.ID, err)
	}
	pred, err := s.predicate(sets)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: rule %s: %v", ErrInvalidRule, s.ID, err)
	}
	return Definition{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Icon:        s.Icon,
		Category:    Category(s.Category),
		Rarity:      rarity,
		Predicate:   pred,
	}, nil
}

func (s RuleSpec) predicate(sets SetResolver) (Predicate, error) {
	switch s.Kind {
	case KindMilestone:
		if s.Threshold <= 0 {
			return nil, fmt.Errorf("threshold must be positive")
		}
		return MilestoneCount(s.Threshold), nil
	case KindCategoryCompletion:
		ids := s.ProblemIDs
		if len(ids) == 0 && s.ChallengeSet != "" {
			if sets == nil {
				return nil, fmt.Errorf("challenge set %q cannot be resolved", s.ChallengeSet)
			}
			resolved, ok := sets.ProblemIDsOfSet(s.ChallengeSet)
			if !ok {
				return nil, fmt.Errorf("challenge set %q not found", s.ChallengeSet)
			}
			ids = resolved
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("no problems to complete")
		}
		return CategoryCompletion(ids), nil
	case KindSingleProblem:
		if s.ProblemID == "" {
			return nil, fmt.Errorf("problemId is required")
		}
		return SingleProblem(s.ProblemID), nil
	case KindVolume:
		if s.Threshold <= 0 {
			return nil, fmt.Errorf("threshold must be positive")
		}
		return Volume(s.Threshold), nil
	case KindFirstAttempt:
		return FirstAttemptSuccess(), nil
	case KindPolyglot:
		if s.Threshold <= 0 {
			return nil, fmt.Errorf("threshold must be positive")
		}
		return Polyglot(s.Threshold), nil
	case KindTimingWindow:
		if s.WindowToMinutes <= s.WindowFromMinutes {
			return nil, fmt.Errorf("windowToMinutes must be greater than windowFromMinutes")
		}
		return TimingWindow(
			time.Duration(s.WindowFromMinutes)*time.Minute,
			time.Duration(s.WindowToMinutes)*time.Minute,
			!s.AnyVerdict), nil
	case KindScoreThreshold:
		if s.Threshold <= 0 {
			return nil, fmt.Errorf("threshold must be positive")
		}
		return ScoreThreshold(s.Threshold), nil
	}
	return nil, fmt.Errorf("unknown rule kind %q", s.Kind)
}

// BuildCatalog 按声明顺序构建目录
func BuildCatalog(specs []RuleSpec, sets SetResolver) (*Catalog, error) {
	defs := make([]Definition, 0, len(specs))
	for _, s := range specs {
		d, err := s.Build(sets)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return NewCatalog(defs...)
}
