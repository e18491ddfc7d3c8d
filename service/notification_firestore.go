package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"google.golang.org/api/iterator"
)

// FirestoreNotificationService 通知写入 Firestore: {collection}/{participantID}/items/{auto}
type FirestoreNotificationService struct {
	client     *firestore.Client
	collection string
	log        loggerv2.Logger
	ttl        time.Duration
	limit      int
	now        func() time.Time
}

var _ NotificationService = (*FirestoreNotificationService)(nil)

func NewFirestoreNotificationService(client *firestore.Client, collection string, log loggerv2.Logger, ttl time.Duration, limit int) *FirestoreNotificationService {
	if collection == "" {
		collection = "notifications"
	}
	if ttl <= 0 {
		ttl = defaultNotificationTTL
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return &FirestoreNotificationService{
		client:     client,
		collection: collection,
		log:        log,
		ttl:        ttl,
		limit:      limit,
		now:        time.Now,
	}
}

func (s *FirestoreNotificationService) items(participantID string) *firestore.CollectionRef {
	return s.client.Collection(s.collection).Doc(participantID).Collection("items")
}

func (s *FirestoreNotificationService) Notify(ctx context.Context, participantID, message string) error {
	now := s.now()
	_, _, err := s.items(participantID).Add(ctx, model.Notification{
		ParticipantID: participantID,
		Message:       message,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	})
	if err != nil {
		return fmt.Errorf("Notify failed at add document: %w", err)
	}
	return nil
}

// GetNotificationList 按创建时间倒序读取, 过期通知在内存中过滤
func (s *FirestoreNotificationService) GetNotificationList(ctx context.Context, participantID string) ([]model.Notification, error) {
	iter := s.items(participantID).OrderBy("createdAt", firestore.Desc).Limit(s.limit).Documents(ctx)
	defer iter.Stop()

	now := s.now()
	var list []model.Notification
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("GetNotificationList failed at iterate: %w", err)
		}
		var n model.Notification
		if err = doc.DataTo(&n); err != nil {
			s.log.WarnContext(ctx, "decode notification failed",
				logger.String("doc", doc.Ref.ID), logger.Error(err))
			continue
		}
		if n.ExpiresAt.After(now) {
			list = append(list, n)
		}
	}
	return list, nil
}
