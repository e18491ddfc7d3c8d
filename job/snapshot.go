package job

import (
	"context"

	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/online_judge_arena/service/exporter/factory"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// LeaderboardSnapshotter 定期导出排行榜并上传到对象存储
type LeaderboardSnapshotter struct {
	rankingSvc service.RankingService
	format     factory.RankingExporterType
	log        loggerv2.Logger
}

func NewLeaderboardSnapshotter(rankingSvc service.RankingService, format factory.RankingExporterType, log loggerv2.Logger) *LeaderboardSnapshotter {
	return &LeaderboardSnapshotter{
		rankingSvc: rankingSvc,
		format:     format,
		log:        log,
	}
}

func (s *LeaderboardSnapshotter) Run(ctx context.Context) error {
	info, err := s.rankingSvc.UploadSnapshot(ctx, s.format)
	if err != nil {
		return err
	}
	s.log.InfoContext(ctx, "leaderboard snapshot created", logger.String("object_key", info.ObjectKey))
	return nil
}
