package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/to404hanga/online_judge_arena/service/exporter"
	"github.com/to404hanga/online_judge_arena/service/exporter/common"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "排名"
	batchSize = 1000
)

type StreamableXLSXRankingExporter struct {
	log    loggerv2.Logger
	source exporter.StandingSource
}

var _ exporter.RankingExporter = (*StreamableXLSXRankingExporter)(nil)

func NewStreamableXLSXRankingExporter(source exporter.StandingSource, log loggerv2.Logger) *StreamableXLSXRankingExporter {
	return &StreamableXLSXRankingExporter{
		source: source,
		log:    log,
	}
}

func (e *StreamableXLSXRankingExporter) Export(ctx context.Context, writer io.Writer) error {
	standings, err := e.source.GetStandings(ctx)
	if err != nil {
		return fmt.Errorf("xlsx exporter get standings failed: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.ErrorContext(ctx, "close excel file failed", logger.Error(err))
		}
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet failed: %w", err)
	}
	f.SetActiveSheet(index)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet failed: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("create stream writer failed: %w", err)
	}
	if err = e.writeHeader(f, sw); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	currentRow := 2 // 第一行是表头
	for page := 1; ; page++ {
		batch, err := common.FetchRanking(ctx, standings, page, batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}
		for i := range batch {
			row := common.Row(&batch[i])
			values := make([]any, len(row))
			for col, v := range row {
				values[col] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, currentRow)
			if err != nil {
				return fmt.Errorf("get cell name failed: %w", err)
			}
			if err = sw.SetRow(cell, values); err != nil {
				return fmt.Errorf("set row failed: %w", err)
			}
			currentRow++
		}
	}

	if err = sw.Flush(); err != nil {
		return fmt.Errorf("flush stream writer failed: %w", err)
	}
	if err = f.Write(writer); err != nil {
		return fmt.Errorf("write excel file failed: %w", err)
	}
	return nil
}

// writeHeader 写入表头并设置列宽, 流式写入要求先设置列宽再写行
func (e *StreamableXLSXRankingExporter) writeHeader(f *excelize.File, sw *excelize.StreamWriter) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E0E0E0"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style failed: %w", err)
	}

	widths := []float64{8, 15, 20, 25, 10, 12, 10, 10}
	for i, w := range widths {
		if err = sw.SetColWidth(i+1, i+1, w); err != nil {
			return fmt.Errorf("set column width failed: %w", err)
		}
	}

	cells := make([]any, len(common.Headers))
	for i, h := range common.Headers {
		cells[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	return sw.SetRow("A1", cells)
}
