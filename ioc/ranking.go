package ioc

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/pkg/minio"
	"github.com/to404hanga/online_judge_arena/repository"
	"github.com/to404hanga/online_judge_arena/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitChangeFeed(client *redis.Client, l loggerv2.Logger) service.ChangeFeed {
	return service.NewRedisChangeFeed(client, l)
}

// InitRankingService minioSvc 为 nil 时不支持快照上传
func InitRankingService(repo repository.ParticipantRepository, rdb redis.Cmdable, feed service.ChangeFeed, minioSvc *minio.MinIOService, l loggerv2.Logger) service.RankingService {
	var cfg config.RankingConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal ranking config failed: %v", err)
	}
	var exporterCfg config.ExporterConfig
	if err := viper.UnmarshalKey(exporterCfg.Key(), &exporterCfg); err != nil {
		log.Panicf("unmarshal exporter config failed: %v", err)
	}

	opts := []service.RankingOption{
		service.WithRankingCacheTTL(time.Duration(cfg.CacheTTLSeconds) * time.Second),
		service.WithExportDir(exporterCfg.Dir),
	}
	if minioSvc != nil {
		var minioCfg config.MinIOConfig
		if err := viper.UnmarshalKey(minioCfg.Key(), &minioCfg); err != nil {
			log.Panicf("unmarshal minio config failed: %v", err)
		}
		opts = append(opts, service.WithSnapshotStore(minioSvc, minioCfg.Bucket, minioCfg.DownloadDurationSeconds))
	}
	return service.NewRankingService(repo, rdb, feed, l, opts...)
}

func InitLeaderboardInvalidator(rankingSvc service.RankingService) service.LeaderboardInvalidator {
	return rankingSvc
}
