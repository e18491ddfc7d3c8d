package ioc

import (
	"log"

	"github.com/to404hanga/online_judge_arena/job"
	"github.com/to404hanga/online_judge_arena/pkg/minio"
	"github.com/to404hanga/online_judge_arena/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// InitScheduler 未配置 minio 时不注册快照相关任务
func InitScheduler(l loggerv2.Logger, scoringSvc service.ScoringService, rankingSvc service.RankingService, minioSvc *minio.MinIOService) *job.CronScheduler {
	scheduler := job.NewCronScheduler(l)

	jobs := []*job.JobConfig{InitBadgeSweepJob(scoringSvc, l)}
	if minioSvc != nil {
		jobs = append(jobs,
			InitLeaderboardSnapshotJob(rankingSvc, l),
			InitSnapshotCleanerJob(minioSvc, l))
	}
	for _, jb := range jobs {
		if err := scheduler.AddJob(jb); err != nil {
			log.Panicf("add job %s failed: %v", jb.Name, err)
		}
	}

	return scheduler
}
