package service

import (
	"context"
	"fmt"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// NotificationService 选手通知, 通知带过期时间, 过期后不再返回
type NotificationService interface {
	Notify(ctx context.Context, participantID, message string) error
	GetNotificationList(ctx context.Context, participantID string) ([]model.Notification, error)
}

const (
	notificationKey          = "arena:notification:%s"
	defaultNotificationTTL   = 24 * time.Hour
	defaultNotificationLimit = 50
)

type RedisNotificationService struct {
	rdb   redis.Cmdable
	log   loggerv2.Logger
	ttl   time.Duration
	limit int64
	now   func() time.Time
}

var _ NotificationService = (*RedisNotificationService)(nil)

func NewRedisNotificationService(rdb redis.Cmdable, log loggerv2.Logger, ttl time.Duration, limit int) *RedisNotificationService {
	if ttl <= 0 {
		ttl = defaultNotificationTTL
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return &RedisNotificationService{
		rdb:   rdb,
		log:   log,
		ttl:   ttl,
		limit: int64(limit),
		now:   time.Now,
	}
}

// Notify 写入列表头部, 截断到上限并刷新整个列表的过期时间
func (s *RedisNotificationService) Notify(ctx context.Context, participantID, message string) error {
	now := s.now()
	n := model.Notification{
		ParticipantID: participantID,
		Message:       message,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}
	val, err := json.Marshal(&n)
	if err != nil {
		return fmt.Errorf("Notify failed at marshal: %w", err)
	}

	key := fmt.Sprintf(notificationKey, participantID)
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, key, val)
	pipe.LTrim(ctx, key, 0, s.limit-1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("Notify failed at exec pipeline: %w", err)
	}
	return nil
}

// GetNotificationList 最新的在前
func (s *RedisNotificationService) GetNotificationList(ctx context.Context, participantID string) ([]model.Notification, error) {
	vals, err := s.rdb.LRange(ctx, fmt.Sprintf(notificationKey, participantID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("GetNotificationList failed at lrange: %w", err)
	}
	now := s.now()
	list := make([]model.Notification, 0, len(vals))
	for _, v := range vals {
		var n model.Notification
		if err := json.Unmarshal([]byte(v), &n); err != nil {
			s.log.WarnContext(ctx, "unmarshal notification failed", logger.Error(err))
			continue
		}
		if !n.ExpiresAt.After(now) {
			continue
		}
		list = append(list, n)
	}
	return list, nil
}
