package service

import (
	"context"
	"fmt"

	"github.com/to404hanga/online_judge_arena/engine/achievement"
	"github.com/to404hanga/online_judge_arena/engine/ledger"
	"github.com/to404hanga/online_judge_arena/model"
)

// ChallengeService 只读题库
type ChallengeService interface {
	ledger.ProblemResolver
	achievement.SetResolver

	// GetChallengeList 按配置顺序返回全部题目集合
	GetChallengeList(ctx context.Context) []model.ChallengeSet
}

type ChallengeServiceImpl struct {
	sets     []model.ChallengeSet
	problems map[string]model.Problem
	bySet    map[string][]string
}

var _ ChallengeService = (*ChallengeServiceImpl)(nil)

// NewChallengeService 校验并索引题库, 题目 id 必须全局唯一, 分值必须为正
func NewChallengeService(sets []model.ChallengeSet) (ChallengeService, error) {
	s := &ChallengeServiceImpl{
		sets:     make([]model.ChallengeSet, 0, len(sets)),
		problems: make(map[string]model.Problem),
		bySet:    make(map[string][]string, len(sets)),
	}
	for _, set := range sets {
		if set.Name == "" {
			return nil, fmt.Errorf("challenge set name is empty")
		}
		if _, ok := s.bySet[set.Name]; ok {
			return nil, fmt.Errorf("duplicate challenge set %s", set.Name)
		}
		ids := make([]string, 0, len(set.Problems))
		problems := make([]model.Problem, 0, len(set.Problems))
		for _, p := range set.Problems {
			if p.ID == "" {
				return nil, fmt.Errorf("challenge set %s has a problem without id", set.Name)
			}
			if _, ok := s.problems[p.ID]; ok {
				return nil, fmt.Errorf("duplicate problem %s", p.ID)
			}
			if p.Points <= 0 {
				return nil, fmt.Errorf("problem %s has non-positive points %d", p.ID, p.Points)
			}
			p.Set = set.Name
			s.problems[p.ID] = p
			ids = append(ids, p.ID)
			problems = append(problems, p)
		}
		set.Problems = problems
		s.bySet[set.Name] = ids
		s.sets = append(s.sets, set)
	}
	return s, nil
}

func (s *ChallengeServiceImpl) GetChallengeList(ctx context.Context) []model.ChallengeSet {
	out := make([]model.ChallengeSet, len(s.sets))
	for i, set := range s.sets {
		set.Problems = append([]model.Problem(nil), set.Problems...)
		out[i] = set
	}
	return out
}

func (s *ChallengeServiceImpl) Problem(id string) (model.Problem, bool) {
	p, ok := s.problems[id]
	return p, ok
}

func (s *ChallengeServiceImpl) ProblemIDsOfSet(name string) ([]string, bool) {
	ids, ok := s.bySet[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), ids...), true
}

// DefaultChallengeSets 配置中未声明 challenges 时使用的题库
func DefaultChallengeSets() []model.ChallengeSet {
	return []model.ChallengeSet{
		{
			Name: "programming", Title: "Programming", Description: "Classic algorithmic warm-ups",
			Problems: []model.Problem{
				{ID: "two-sum", Title: "Two Sum", Points: 100, Difficulty: model.DifficultyEasy, TestCases: 10},
				{ID: "fizzbuzz", Title: "FizzBuzz", Points: 50, Difficulty: model.DifficultyEasy, TestCases: 5},
				{ID: "longest-palindrome", Title: "Longest Palindromic Substring", Points: 200, Difficulty: model.DifficultyMedium, TestCases: 12},
				{ID: "merge-intervals", Title: "Merge Intervals", Points: 200, Difficulty: model.DifficultyMedium, TestCases: 12},
				{ID: "n-queens", Title: "N-Queens", Points: 300, Difficulty: model.DifficultyHard, TestCases: 8},
			},
		},
		{
			Name: "cryptography", Title: "Cryptography", Description: "Break and build classical ciphers",
			Problems: []model.Problem{
				{ID: "caesar-cipher", Title: "Caesar Cipher", Points: 100, Difficulty: model.DifficultyEasy, TestCases: 6},
				{ID: "vigenere-cipher", Title: "Vigenere Cipher", Points: 200, Difficulty: model.DifficultyMedium, TestCases: 8},
				{ID: "rsa-toy", Title: "Toy RSA", Points: 300, Difficulty: model.DifficultyHard, TestCases: 10},
			},
		},
		{
			Name: "data-structures", Title: "Data Structures", Description: "Implement the fundamentals",
			Problems: []model.Problem{
				{ID: "linked-list-reverse", Title: "Reverse a Linked List", Points: 100, Difficulty: model.DifficultyEasy, TestCases: 6},
				{ID: "lru-cache", Title: "LRU Cache", Points: 200, Difficulty: model.DifficultyMedium, TestCases: 10},
				{ID: "trie", Title: "Prefix Trie", Points: 200, Difficulty: model.DifficultyMedium, TestCases: 10},
			},
		},
		{
			Name: "debugging", Title: "Debugging", Description: "Find and fix the bug",
			Problems: []model.Problem{
				{ID: "fix-off-by-one", Title: "Off By One", Points: 100, Difficulty: model.DifficultyEasy, TestCases: 5},
				{ID: "fix-race", Title: "Data Race", Points: 200, Difficulty: model.DifficultyMedium, TestCases: 5},
			},
		},
		{
			Name: "social-impact", Title: "Social Impact", Description: "Problems inspired by real communities",
			Problems: []model.Problem{
				{ID: "water-distribution", Title: "Water Distribution", Points: 250, Difficulty: model.DifficultyMedium, TestCases: 10},
				{ID: "food-bank-routing", Title: "Food Bank Routing", Points: 300, Difficulty: model.DifficultyHard, TestCases: 10},
			},
		},
	}
}
