package ioc

import (
	"log"
	"math/rand"
	"time"

	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/service"
)

// InitChallengeService 未配置题库时使用内置题目集合
func InitChallengeService() service.ChallengeService {
	var sets []model.ChallengeSet
	if viper.IsSet(config.ChallengesKey) {
		if err := viper.UnmarshalKey(config.ChallengesKey, &sets); err != nil {
			log.Panicf("unmarshal challenges config failed: %v", err)
		}
	} else {
		sets = service.DefaultChallengeSets()
	}
	svc, err := service.NewChallengeService(sets)
	if err != nil {
		log.Panicf("init challenge service failed: %v", err)
	}
	return svc
}

func InitJudgeService() service.JudgeService {
	var cfg config.JudgeConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal judge config failed: %v", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return service.NewSimulatedJudgeService(rand.New(rand.NewSource(seed)), cfg.AcceptRate)
}
