//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/to404hanga/online_judge_arena/cmd/scorer/ioc"
	commonioc "github.com/to404hanga/online_judge_arena/ioc"
	"github.com/to404hanga/online_judge_arena/event"
	"github.com/to404hanga/online_judge_arena/service"
)

func InitSubmissionConsumer() *event.SubmissionConsumer {
	wire.Build(
		commonioc.InitLogger,
		commonioc.InitDB,
		commonioc.InitRedisClient,
		commonioc.InitRedis,
		commonioc.InitKafkaProducer,
		commonioc.InitKafkaConsumerGroup,
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

		ioc.InitSubmissionConsumer,
	)
	return &event.SubmissionConsumer{}
}
