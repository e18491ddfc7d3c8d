package ioc

import (
	"log"

	"github.com/IBM/sarama"
	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/event"
)

func loadKafkaConfig() config.KafkaConfig {
	var cfg config.KafkaConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal kafka config failed: %v", err)
	}
	return cfg
}

// InitKafkaProducer kafka 未启用时返回 nil, 提交在请求内同步计分
func InitKafkaProducer() event.Producer {
	cfg := loadKafkaConfig()
	if !cfg.Enabled {
		return nil
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner
	producer, err := sarama.NewSyncProducer(cfg.Addrs, saramaCfg)
	if err != nil {
		log.Panicf("init kafka producer failed: %v", err)
	}
	return event.NewSaramaProducer(producer)
}

func InitKafkaConsumerGroup() sarama.ConsumerGroup {
	cfg := loadKafkaConfig()
	if !cfg.Enabled {
		log.Panicf("kafka is disabled, scorer has nothing to consume")
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaCfg.Consumer.Return.Errors = true
	group, err := sarama.NewConsumerGroup(cfg.Addrs, cfg.GroupID, saramaCfg)
	if err != nil {
		log.Panicf("init kafka consumer group failed: %v", err)
	}
	return group
}
