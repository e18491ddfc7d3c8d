package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Problem 题目, 来自只读配置
type Problem struct {
	ID         string     `json:"id" mapstructure:"id"`
	Title      string     `json:"title" mapstructure:"title"`
	Points     int        `json:"points" mapstructure:"points"`
	Difficulty Difficulty `json:"difficulty" mapstructure:"difficulty"`
	TestCases  int        `json:"test_cases" mapstructure:"testCases"`
	Set        string     `json:"set" mapstructure:"-"`
}

// ChallengeSet 题目集合, 如 programming / cryptography / data-structures
type ChallengeSet struct {
	Name        string    `json:"name" mapstructure:"name"`
	Title       string    `json:"title" mapstructure:"title"`
	Description string    `json:"description" mapstructure:"description"`
	Problems    []Problem `json:"problems" mapstructure:"problems"`
}

type GetChallengeListParam struct {
	CommonParam `json:"-"`
}

type GetChallengeListResponse struct {
	List []ChallengeSet `json:"list"`
}
