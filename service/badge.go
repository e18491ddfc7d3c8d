package service

import (
	"context"
	"fmt"
	"time"

	"github.com/to404hanga/online_judge_arena/engine/achievement"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/repository"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type BadgeService interface {
	// GetBadgeCatalog 徽章目录, 标记选手是否已获得
	GetBadgeCatalog(ctx context.Context, participantID string) ([]model.BadgeDefinitionView, error)
	// GetMyBadges 选手已获得的徽章
	GetMyBadges(ctx context.Context, participantID string) ([]model.Badge, error)
	// EvaluateAndAward 评估并持久化新徽章, 同时更新 p.Badges, 返回本次新增的徽章
	EvaluateAndAward(ctx context.Context, p *model.Participant, history []model.Submission) ([]model.Badge, error)
}

type BadgeServiceImpl struct {
	evaluator *achievement.Evaluator
	env       achievement.Env
	repo      repository.ParticipantRepository
	log       loggerv2.Logger
	now       func() time.Time
}

var _ BadgeService = (*BadgeServiceImpl)(nil)

func NewBadgeService(evaluator *achievement.Evaluator, env achievement.Env, repo repository.ParticipantRepository, log loggerv2.Logger) BadgeService {
	return &BadgeServiceImpl{
		evaluator: evaluator,
		env:       env,
		repo:      repo,
		log:       log,
		now:       time.Now,
	}
}

func (s *BadgeServiceImpl) GetBadgeCatalog(ctx context.Context, participantID string) ([]model.BadgeDefinitionView, error) {
	held, err := s.repo.ListBadges(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("GetBadgeCatalog failed at list badges: %w", err)
	}
	earned := make(map[string]struct{}, len(held))
	for _, b := range held {
		earned[b.BadgeID] = struct{}{}
	}

	defs := s.evaluator.Catalog().Definitions()
	views := make([]model.BadgeDefinitionView, 0, len(defs))
	for _, d := range defs {
		_, ok := earned[d.ID]
		views = append(views, d.View(ok))
	}
	return views, nil
}

func (s *BadgeServiceImpl) GetMyBadges(ctx context.Context, participantID string) ([]model.Badge, error) {
	badges, err := s.repo.ListBadges(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("GetMyBadges failed at list badges: %w", err)
	}
	return badges, nil
}

func (s *BadgeServiceImpl) EvaluateAndAward(ctx context.Context, p *model.Participant, history []model.Submission) ([]model.Badge, error) {
	earned := s.evaluator.EvaluateNewBadges(ctx, p, history, s.env)
	if len(earned) == 0 {
		return nil, nil
	}

	merged, candidates := achievement.Merge(p.ID, p.Badges, earned, s.now())
	if len(candidates) == 0 {
		return nil, nil
	}
	added, err := s.repo.AddBadges(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("EvaluateAndAward failed at add badges: %w", err)
	}
	if len(added) < len(candidates) {
		// 快照过期, 部分徽章已由其他流程写入, 以存储为准
		s.log.WarnContext(ctx, "badges already awarded elsewhere",
			logger.String("participant_id", p.ID),
			logger.Int("candidates", len(candidates)),
			logger.Int("inserted", len(added)))
		held, err := s.repo.ListBadges(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("EvaluateAndAward failed at list badges: %w", err)
		}
		merged = held
	}
	p.Badges = merged

	for _, b := range added {
		s.log.InfoContext(ctx, "badge awarded",
			logger.String("participant_id", p.ID),
			logger.String("badge_id", b.BadgeID),
			logger.String("rarity", b.Rarity))
	}
	return added, nil
}
