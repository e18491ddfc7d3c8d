package event

import (
	"context"

	"github.com/IBM/sarama"
)

// Producer 消息发布
type Producer interface {
	Produce(ctx context.Context, msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
	Close() error
}

type SaramaProducer struct {
	producer sarama.SyncProducer
}

var _ Producer = (*SaramaProducer)(nil)

func NewSaramaProducer(producer sarama.SyncProducer) *SaramaProducer {
	return &SaramaProducer{producer: producer}
}

// Produce 同步发送, ctx 仅用于调用方取消前的快速返回
func (p *SaramaProducer) Produce(ctx context.Context, msg *sarama.ProducerMessage) (int32, int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	return p.producer.SendMessage(msg)
}

func (p *SaramaProducer) Close() error {
	return p.producer.Close()
}
