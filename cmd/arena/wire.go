//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/to404hanga/online_judge_arena/cmd/arena/ioc"
	commonioc "github.com/to404hanga/online_judge_arena/ioc"
	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/online_judge_arena/web"
)

func BuildDependency() *web.GinServer {
	wire.Build(
		commonioc.InitLogger,
		commonioc.InitDB,
		commonioc.InitRedisClient,
		commonioc.InitRedis,
		commonioc.InitKafkaProducer,
		commonioc.InitMinIO,
		commonioc.InitJWTHandler,
		commonioc.InitParticipantRepository,
		commonioc.InitSubmissionRepository,

		commonioc.InitChallengeService,
		commonioc.InitJudgeService,
		commonioc.InitLedger,
		commonioc.InitBadgeService,
		commonioc.InitLocker,
		commonioc.InitNotificationService,
		commonioc.InitChangeFeed,
		commonioc.InitRankingService,
		commonioc.InitLeaderboardInvalidator,
		service.NewParticipantService,
		service.NewScoringService,
		service.NewSubmissionService,

		web.NewParticipantHandler,
		web.NewChallengeHandler,
		web.NewSubmissionHandler,
		web.NewLeaderboardHandler,
		web.NewBadgeHandler,
		web.NewNotificationHandler,
		web.NewHealthHandler,

		ioc.InitGinServer,
	)
	return &web.GinServer{}
}
