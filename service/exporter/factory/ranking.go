package factory

import (
	"github.com/to404hanga/online_judge_arena/service/exporter"
	"github.com/to404hanga/online_judge_arena/service/exporter/csv"
	"github.com/to404hanga/online_judge_arena/service/exporter/xlsx"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type RankingExporterType string

const (
	CSVRankingExporter  RankingExporterType = "csv"
	XLSXRankingExporter RankingExporterType = "xlsx"
)

var ExporterSuffixMap = map[RankingExporterType]string{
	CSVRankingExporter:  ".csv",
	XLSXRankingExporter: ".xlsx",
}

var ContentTypeMap = map[RankingExporterType]string{
	CSVRankingExporter:  "text/csv",
	XLSXRankingExporter: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type RankingExporterFactory struct {
	factory map[RankingExporterType]exporter.RankingExporter
}

func NewRankingExporterFactory(source exporter.StandingSource, log loggerv2.Logger) *RankingExporterFactory {
	return &RankingExporterFactory{
		factory: map[RankingExporterType]exporter.RankingExporter{
			CSVRankingExporter:  csv.NewStreamableCSVRankingExporter(source, log),
			XLSXRankingExporter: xlsx.NewStreamableXLSXRankingExporter(source, log),
		},
	}
}

// GetRankingExporter 不支持的类型返回 nil
func (f *RankingExporterFactory) GetRankingExporter(exporterType RankingExporterType) exporter.RankingExporter {
	return f.factory[exporterType]
}
