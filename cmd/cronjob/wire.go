//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/to404hanga/online_judge_arena/cmd/cronjob/ioc"
	commonioc "github.com/to404hanga/online_judge_arena/ioc"
	"github.com/to404hanga/online_judge_arena/job"
	"github.com/to404hanga/online_judge_arena/service"
)

func InitScheduler() *job.CronScheduler {
	wire.Build(
		commonioc.InitLogger,
		commonioc.InitDB,
		commonioc.InitRedisClient,
		commonioc.InitRedis,
		commonioc.InitKafkaProducer,
		commonioc.InitMinIO,
		commonioc.InitParticipantRepository,
		commonioc.InitSubmissionRepository,

		commonioc.InitChallengeService,
		commonioc.InitLedger,
		commonioc.InitBadgeService,
		commonioc.InitLocker,
		commonioc.InitNotificationService,
		commonioc.InitChangeFeed,
		commonioc.InitRankingService,
		commonioc.InitLeaderboardInvalidator,
		service.NewScoringService,

		ioc.InitScheduler,
	)
	return &job.CronScheduler{}
}
