package model

import "time"

type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	ParticipantID  string    `json:"participant_id"`
	Name           string    `json:"name"`
	Institution    string    `json:"institution"`
	StudentNumber  string    `json:"student_number"`
	Score          int       `json:"score"`
	SolvedProblems int       `json:"solved_problems"`
	PenaltyTime    int       `json:"penalty_time"`
	BadgeCount     int       `json:"badge_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type GetLeaderboardParam struct {
	CommonParam `json:"-"`
	PageParam

	SortBy   string `form:"sort_by" binding:"omitempty,oneof=score solved penalty"`
	Desc     *bool  `form:"desc"`
	Query    string `form:"query"`
	Renumber bool   `form:"renumber"`
}

type GetLeaderboardResponse struct {
	List     []LeaderboardEntry `json:"list"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type ExportLeaderboardParam struct {
	CommonParam `json:"-"`

	Format string `form:"format" binding:"required,oneof=csv xlsx"`
}
