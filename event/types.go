package event

import (
	"time"

	json "github.com/bytedance/sonic"
)

const (
	SubmissionTopic   = "arena_submission_topic"
	BadgeAwardedTopic = "arena_badge_topic"
)

// SubmissionMessage 新提交待计分
type SubmissionMessage struct {
	SubmissionID  string `json:"submission_id"`
	ParticipantID string `json:"participant_id"`
}

func (s *SubmissionMessage) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

func (s *SubmissionMessage) Unmarshal(data []byte) error {
	return json.Unmarshal(data, s)
}

// BadgeAwardedMessage 选手获得新徽章
type BadgeAwardedMessage struct {
	ParticipantID string    `json:"participant_id"`
	BadgeID       string    `json:"badge_id"`
	Name          string    `json:"name"`
	Rarity        string    `json:"rarity"`
	EarnedAt      time.Time `json:"earned_at"`
}

func (b *BadgeAwardedMessage) Marshal() ([]byte, error) {
	return json.Marshal(b)
}
