package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/to404hanga/online_judge_arena/service/exporter"
	"github.com/to404hanga/online_judge_arena/service/exporter/common"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const batchSize = 1000

type StreamableCSVRankingExporter struct {
	log    loggerv2.Logger
	source exporter.StandingSource
}

var _ exporter.RankingExporter = (*StreamableCSVRankingExporter)(nil)

func NewStreamableCSVRankingExporter(source exporter.StandingSource, log loggerv2.Logger) *StreamableCSVRankingExporter {
	return &StreamableCSVRankingExporter{
		source: source,
		log:    log,
	}
}

// Export 按批写出, 每批结束 Flush 一次
func (e *StreamableCSVRankingExporter) Export(ctx context.Context, writer io.Writer) error {
	standings, err := e.source.GetStandings(ctx)
	if err != nil {
		return fmt.Errorf("csv exporter get standings failed: %w", err)
	}

	csvWriter := csv.NewWriter(writer)
	if err = csvWriter.Write(common.Headers); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	for page := 1; ; page++ {
		batch, err := common.FetchRanking(ctx, standings, page, batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}
		for i := range batch {
			if err = csvWriter.Write(common.Row(&batch[i])); err != nil {
				return fmt.Errorf("write record failed: %w", err)
			}
		}
		csvWriter.Flush()
		if err = csvWriter.Error(); err != nil {
			return fmt.Errorf("flush csv failed: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
