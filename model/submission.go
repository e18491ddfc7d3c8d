package model

import "time"

type SubmissionStatus string

const (
	SubmissionStatusAccepted          SubmissionStatus = "Accepted"
	SubmissionStatusWrongAnswer       SubmissionStatus = "WrongAnswer"
	SubmissionStatusTimeLimitExceeded SubmissionStatus = "TimeLimitExceeded"
	SubmissionStatusRuntimeError      SubmissionStatus = "RuntimeError"
	SubmissionStatusCompilationError  SubmissionStatus = "CompilationError"
)

func (s SubmissionStatus) IsAccepted() bool {
	return s == SubmissionStatusAccepted
}

// Submission 提交记录, 只追加, 创建后不修改不删除
// Seq 为插入序, 与 CreatedAt 一起确定提交的全序
type Submission struct {
	Seq           uint64           `json:"-" gorm:"column:seq;primaryKey;autoIncrement"`
	ID            string           `json:"id" gorm:"column:id;size:36;uniqueIndex;not null"`
	ParticipantID string           `json:"participant_id" gorm:"column:participant_id;size:36;index:idx_participant_created,priority:1;not null"`
	ProblemID     string           `json:"problem_id" gorm:"column:problem_id;size:64;not null"`
	Code          string           `json:"code" gorm:"column:code;type:text"`
	Language      string           `json:"language" gorm:"column:language;size:16;not null"`
	Status        SubmissionStatus `json:"status" gorm:"column:status;size:24;not null"`
	TestsPassed   int              `json:"tests_passed" gorm:"column:tests_passed"`
	TestsTotal    int              `json:"tests_total" gorm:"column:tests_total"`
	CreatedAt     time.Time        `json:"created_at" gorm:"column:created_at;index:idx_participant_created,priority:2"`
}

func (Submission) TableName() string {
	return "submission"
}

// Before 按 (CreatedAt, Seq) 判断提交先后
func (s *Submission) Before(other *Submission) bool {
	if !s.CreatedAt.Equal(other.CreatedAt) {
		return s.CreatedAt.Before(other.CreatedAt)
	}
	return s.Seq < other.Seq
}

type SubmitSolutionParam struct {
	CommonParam `json:"-"`

	ProblemID string `json:"problem_id" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Language  string `json:"language" binding:"required,oneof=c cpp java python javascript go rust"`
}

type SubmitSolutionResponse struct {
	SubmissionID string           `json:"submission_id"`
	Status       SubmissionStatus `json:"status"`
	TestsPassed  int              `json:"tests_passed"`
	TestsTotal   int              `json:"tests_total"`
}

type GetMySubmissionListParam struct {
	CommonParam `json:"-"`

	ProblemID string `form:"problem_id"`
}

type GetMySubmissionListResponse struct {
	List  []Submission `json:"list"`
	Total int          `json:"total"`
}
