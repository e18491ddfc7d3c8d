package ioc

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/event"
	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// NewScoringHandler 提交或选手不存在时跳过消息, 其余错误由消费者重试
func NewScoringHandler(scoringSvc service.ScoringService, l loggerv2.Logger) event.SubmissionHandler {
	return func(ctx context.Context, msg event.SubmissionMessage) error {
		ctx = loggerv2.ContextWithFields(ctx,
			logger.String("submission_id", msg.SubmissionID),
			logger.String("participant_id", msg.ParticipantID))

		res, err := scoringSvc.ProcessSubmission(ctx, msg.SubmissionID)
		if err != nil {
			if errs.IsType(err, errs.TypeNotFound) {
				return fmt.Errorf("%w: %v", event.ErrSkip, err)
			}
			return err
		}
		l.DebugContext(ctx, "submission scored",
			logger.Bool("credited", res.Credited),
			logger.Int("new_badges", len(res.NewBadges)))
		return nil
	}
}

func InitSubmissionConsumer(group sarama.ConsumerGroup, scoringSvc service.ScoringService, l loggerv2.Logger) *event.SubmissionConsumer {
	var cfg config.KafkaConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal kafka config failed: %v", err)
	}
	return event.NewSubmissionConsumer(group, NewScoringHandler(scoringSvc, l), l,
		event.WithRetry(cfg.RetryTimes, time.Duration(cfg.RetryIntervalMs)*time.Millisecond))
}
