package ioc

import (
	"log"

	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/engine/achievement"
	"github.com/to404hanga/online_judge_arena/engine/ledger"
	"github.com/to404hanga/online_judge_arena/repository"
	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func loadCompetitionConfig() config.CompetitionConfig {
	var cfg config.CompetitionConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal competition config failed: %v", err)
	}
	return cfg
}

func InitLedger(challenges service.ChallengeService) *ledger.Ledger {
	cfg := loadCompetitionConfig()
	start, _, err := cfg.Window()
	if err != nil {
		log.Panicf("invalid competition window: %v", err)
	}
	return ledger.New(challenges,
		ledger.WithCompetitionStart(start),
		ledger.WithWrongAttemptPenalty(cfg.WrongAttemptPenaltyMinutes))
}

// InitBadgeService 未配置徽章规则时使用内置规则
func InitBadgeService(challenges service.ChallengeService, repo repository.ParticipantRepository, l loggerv2.Logger) service.BadgeService {
	specs := achievement.DefaultRules()
	if viper.IsSet(config.BadgesKey) {
		specs = nil
		if err := viper.UnmarshalKey(config.BadgesKey, &specs); err != nil {
			log.Panicf("unmarshal badges config failed: %v", err)
		}
	}
	catalog, err := achievement.BuildCatalog(specs, challenges)
	if err != nil {
		log.Panicf("build badge catalog failed: %v", err)
	}

	start, end, err := loadCompetitionConfig().Window()
	if err != nil {
		log.Panicf("invalid competition window: %v", err)
	}
	evaluator := achievement.NewEvaluator(catalog, achievement.WithObserver(service.NewLogBadgeObserver(l)))
	l.Info("badge catalog loaded", logger.Int("badges", len(catalog.Definitions())))
	return service.NewBadgeService(evaluator, achievement.Env{CompetitionStart: start, CompetitionEnd: end}, repo, l)
}
