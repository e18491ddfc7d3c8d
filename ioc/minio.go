package ioc

import (
	"context"
	"log"
	"time"

	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/pkg/minio"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// InitMinIO 未配置 endpoint 时返回 nil, 排行榜快照功能关闭
func InitMinIO(l loggerv2.Logger) *minio.MinIOService {
	var cfg config.MinIOConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal minio config failed: %v", err)
	}
	if cfg.Endpoint == "" {
		l.Warn("minio endpoint not configured, leaderboard snapshots disabled")
		return nil
	}

	svc, err := minio.NewMinIOService(l, cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		log.Panicf("init minio failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = svc.EnsureBucket(ctx, cfg.Bucket); err != nil {
		log.Panicf("ensure minio bucket %s failed: %v", cfg.Bucket, err)
	}
	return svc
}
