package ioc

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitLocker(rdb redis.Cmdable, l loggerv2.Logger) service.Locker {
	var cfg config.LockConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal lock config failed: %v", err)
	}
	return service.NewRedisLocker(rdb, l,
		time.Duration(cfg.TTL)*time.Millisecond,
		time.Duration(cfg.RetryInterval)*time.Millisecond,
		time.Duration(cfg.MaxWait)*time.Millisecond)
}
