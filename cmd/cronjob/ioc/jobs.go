package ioc

import (
	"log"
	"time"

	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/cmd/cronjob/config"
	commonconfig "github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/job"
	"github.com/to404hanga/online_judge_arena/job/cleaner"
	"github.com/to404hanga/online_judge_arena/pkg/minio"
	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/online_judge_arena/service/exporter/factory"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func unmarshal(key string, rawVal any) {
	if err := viper.UnmarshalKey(key, rawVal); err != nil {
		log.Panicf("unmarshal %s config failed: %v", key, err)
	}
}

func InitBadgeSweepJob(scoringSvc service.ScoringService, l loggerv2.Logger) *job.JobConfig {
	var cfg config.BadgeSweepConfig
	unmarshal(cfg.Key(), &cfg)

	sweeper := job.NewBadgeSweeper(scoringSvc, l)
	return &job.JobConfig{
		Name:        "徽章补发",
		CronExpr:    cfg.CronExpr,
		JobFunc:     sweeper.Run,
		Description: "按当前徽章目录重新评估全部选手, 补发缺失的徽章",
		Enabled:     cfg.Enabled,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
	}
}

func InitLeaderboardSnapshotJob(rankingSvc service.RankingService, l loggerv2.Logger) *job.JobConfig {
	var cfg config.LeaderboardSnapshotConfig
	unmarshal(cfg.Key(), &cfg)

	format := factory.RankingExporterType(cfg.Format)
	if format == "" {
		format = factory.XLSXRankingExporter
	}
	snapshotter := job.NewLeaderboardSnapshotter(rankingSvc, format, l)
	return &job.JobConfig{
		Name:        "排行榜快照",
		CronExpr:    cfg.CronExpr,
		JobFunc:     snapshotter.Run,
		Description: "导出当前排行榜并上传到 MinIO",
		Enabled:     cfg.Enabled,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
	}
}

func InitSnapshotCleanerJob(minioSvc *minio.MinIOService, l loggerv2.Logger) *job.JobConfig {
	var cfg config.SnapshotCleanerConfig
	unmarshal(cfg.Key(), &cfg)
	var minioCfg commonconfig.MinIOConfig
	unmarshal(minioCfg.Key(), &minioCfg)

	c := cleaner.NewSnapshotCleaner(minioSvc, l, minioCfg.Bucket, service.SnapshotPrefix, cfg.RetentionDays)
	return &job.JobConfig{
		Name:        "排行榜快照清理",
		CronExpr:    cfg.CronExpr,
		JobFunc:     c.RunCleanup,
		Description: "清理 MinIO 中超过保留天数的排行榜快照",
		Enabled:     cfg.Enabled,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
	}
}
