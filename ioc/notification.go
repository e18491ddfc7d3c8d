package ioc

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"google.golang.org/api/option"
)

const (
	NotificationSinkRedis     = "redis"
	NotificationSinkFirestore = "firestore"
)

// InitNotificationService 默认写入 redis, sink 为 firestore 时写入 firestore 集合
func InitNotificationService(rdb redis.Cmdable, l loggerv2.Logger) service.NotificationService {
	var cfg config.NotificationConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal notification config failed: %v", err)
	}
	ttl := time.Duration(cfg.TTLSeconds) * time.Second

	switch cfg.Sink {
	case "", NotificationSinkRedis:
		return service.NewRedisNotificationService(rdb, l, ttl, cfg.MaxPerParticipant)
	case NotificationSinkFirestore:
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		client, err := firestore.NewClient(context.Background(), cfg.FirestoreProjectID, opts...)
		if err != nil {
			log.Panicf("init firestore client failed: %v", err)
		}
		return service.NewFirestoreNotificationService(client, cfg.FirestoreCollection, l, ttl, cfg.MaxPerParticipant)
	default:
		log.Panicf("unsupported notification sink: %s", cfg.Sink)
		return nil
	}
}
