package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/to404hanga/pkg404/gotools/retry"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// SubmissionHandler 处理一条提交消息, 返回错误时消息不会被标记为已消费
type SubmissionHandler func(ctx context.Context, msg SubmissionMessage) error

// ErrSkip 消息无法处理且重试无意义, 直接标记为已消费
var ErrSkip = errors.New("skip message")

const (
	defaultRetryTimes    = 3
	defaultRetryInterval = 200 * time.Millisecond
)

type SubmissionConsumer struct {
	group         sarama.ConsumerGroup
	handler       SubmissionHandler
	log           loggerv2.Logger
	retryTimes    int
	retryInterval time.Duration
}

type ConsumerOption func(*SubmissionConsumer)

// WithRetry 单条消息在本地重试的次数与初始间隔
func WithRetry(times int, interval time.Duration) ConsumerOption {
	return func(c *SubmissionConsumer) {
		if times > 0 {
			c.retryTimes = times
		}
		if interval > 0 {
			c.retryInterval = interval
		}
	}
}

func NewSubmissionConsumer(group sarama.ConsumerGroup, handler SubmissionHandler, log loggerv2.Logger, opts ...ConsumerOption) *SubmissionConsumer {
	c := &SubmissionConsumer{
		group:         group,
		handler:       handler,
		log:           log,
		retryTimes:    defaultRetryTimes,
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start 阻塞消费直到 ctx 取消
func (c *SubmissionConsumer) Start(ctx context.Context) error {
	for {
		if err := c.group.Consume(ctx, []string{SubmissionTopic}, c); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("consume %s failed: %w", SubmissionTopic, err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *SubmissionConsumer) Close() error {
	return c.group.Close()
}

func (c *SubmissionConsumer) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (c *SubmissionConsumer) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim 重试耗尽时不提交位点并结束会话, 重新加入消费组后从失败的消息继续
func (c *SubmissionConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := c.handle(session.Context(), msg); err != nil {
				return fmt.Errorf("partition %d offset %d: %w", msg.Partition, msg.Offset, err)
			}
			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// handle 返回 nil 表示消息可以提交位点
func (c *SubmissionConsumer) handle(ctx context.Context, raw *sarama.ConsumerMessage) error {
	ctx = loggerv2.ContextWithFields(ctx,
		logger.String("topic", raw.Topic),
		logger.Int64("offset", raw.Offset))

	var msg SubmissionMessage
	if err := msg.Unmarshal(raw.Value); err != nil {
		c.log.ErrorContext(ctx, "unmarshal submission message failed", logger.Error(err))
		return nil
	}

	var skipped error
	err := retry.Do(ctx, func() error {
		err := c.handler(ctx, msg)
		if errors.Is(err, ErrSkip) {
			skipped = err
			return nil
		}
		if err != nil {
			c.log.WarnContext(ctx, "handle submission message failed, retrying",
				logger.String("submission_id", msg.SubmissionID), logger.Error(err))
		}
		return err
	}, retry.WithRetryTimes(c.retryTimes), retry.WithBaseInterval(c.retryInterval))
	if err != nil {
		c.log.ErrorContext(ctx, "handle submission message failed",
			logger.String("submission_id", msg.SubmissionID), logger.Error(err))
		return fmt.Errorf("handle submission %s failed: %w", msg.SubmissionID, err)
	}
	if skipped != nil {
		c.log.WarnContext(ctx, "submission message skipped",
			logger.String("submission_id", msg.SubmissionID), logger.Error(skipped))
	}
	return nil
}
