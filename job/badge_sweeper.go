package job

import (
	"context"

	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// BadgeSweeper 补记遗漏的计分, 再对全部选手补发徽章
type BadgeSweeper struct {
	scoringSvc service.ScoringService
	log        loggerv2.Logger
}

func NewBadgeSweeper(scoringSvc service.ScoringService, log loggerv2.Logger) *BadgeSweeper {
	return &BadgeSweeper{
		scoringSvc: scoringSvc,
		log:        log,
	}
}

func (b *BadgeSweeper) Run(ctx context.Context) error {
	repaired, err := b.scoringSvc.RepairScores(ctx)
	if err != nil {
		return err
	}
	awarded, err := b.scoringSvc.ReevaluateAll(ctx)
	if err != nil {
		return err
	}
	b.log.InfoContext(ctx, "badge sweep completed",
		logger.Int("repaired", repaired),
		logger.Int("awarded", awarded))
	return nil
}
