package model

import "time"

// Participant 参赛选手, 聚合字段 Score / SolvedProblems / PenaltyTime 只由计分流程维护
type Participant struct {
	ID             string    `json:"id" gorm:"column:id;primaryKey;size:36"`
	Name           string    `json:"name" gorm:"column:name;size:64;not null"`
	Email          string    `json:"email" gorm:"column:email;size:128;uniqueIndex;not null"`
	Institution    string    `json:"institution" gorm:"column:institution;size:128"`
	StudentNumber  string    `json:"student_number" gorm:"column:student_number;size:32;uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"column:password_hash;size:72;not null"`
	Score          int       `json:"score" gorm:"column:score;not null;default:0"`
	SolvedProblems int       `json:"solved_problems" gorm:"column:solved_problems;not null;default:0"`
	PenaltyTime    int       `json:"penalty_time" gorm:"column:penalty_time;not null;default:0"` // 单位: 分钟
	Badges         []Badge   `json:"badges" gorm:"foreignKey:ParticipantID;references:ID"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Participant) TableName() string {
	return "participant"
}

// HasBadge 是否已获得指定徽章
func (p *Participant) HasBadge(badgeID string) bool {
	for i := range p.Badges {
		if p.Badges[i].BadgeID == badgeID {
			return true
		}
	}
	return false
}

// SolvedProblem 题目首次通过记录, (participant_id, problem_id) 唯一, 保证每题只计一次分
type SolvedProblem struct {
	ParticipantID  string    `gorm:"column:participant_id;primaryKey;size:36"`
	ProblemID      string    `gorm:"column:problem_id;primaryKey;size:64"`
	SubmissionID   string    `gorm:"column:submission_id;size:36;not null"`
	Points         int       `gorm:"column:points;not null"`
	PenaltyMinutes int       `gorm:"column:penalty_minutes;not null"`
	SolvedAt       time.Time `gorm:"column:solved_at;not null"`
}

func (SolvedProblem) TableName() string {
	return "solved_problem"
}

type RegisterParam struct {
	CommonParam `json:"-"`

	Name          string `json:"name" binding:"required" validate:"required,min=1,max=64"`
	Email         string `json:"email" binding:"required" validate:"required,email,max=128"`
	Institution   string `json:"institution" validate:"max=128"`
	StudentNumber string `json:"student_number" binding:"required" validate:"required,alphanum,min=4,max=32"`
	Password      string `json:"password" binding:"required" validate:"required,min=6,max=64"`
}

type LoginParam struct {
	CommonParam `json:"-"`

	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LogoutParam struct {
	CommonParam `json:"-"`
}

// UpdateProfileParam 只更新非 nil 字段
type UpdateProfileParam struct {
	CommonParam `json:"-"`

	Name        *string `json:"name" validate:"omitnil,min=1,max=64"`
	Institution *string `json:"institution" validate:"omitnil,max=128"`
}

type RefreshTokenParam struct {
	CommonParam `json:"-"`
}

type GetProfileParam struct {
	CommonParam `json:"-"`
}

type ProfileResponse struct {
	Participant
	Rank int `json:"rank"`
}
