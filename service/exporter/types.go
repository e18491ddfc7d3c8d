package exporter

import (
	"context"
	"io"

	"github.com/to404hanga/online_judge_arena/engine/ranking"
)

// StandingSource 提供规范排名
type StandingSource interface {
	GetStandings(ctx context.Context) ([]ranking.Standing, error)
}

type RankingExporter interface {
	Export(ctx context.Context, writer io.Writer) error
}
