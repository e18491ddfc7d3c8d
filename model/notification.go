package model

import "time"

type Notification struct {
	ParticipantID string    `json:"participant_id" firestore:"participantId"`
	Message       string    `json:"message" firestore:"message"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	ExpiresAt     time.Time `json:"expires_at" firestore:"expiresAt"`
}

type GetNotificationListParam struct {
	CommonParam `json:"-"`
}

type GetNotificationListResponse struct {
	List []Notification `json:"list"`
}
