package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_arena/constants"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/pkg/gintool"
	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/online_judge_arena/service/exporter/factory"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type LeaderboardHandler struct {
	rankingSvc service.RankingService
	log        loggerv2.Logger
	liveSize   int
}

var _ Handler = (*LeaderboardHandler)(nil)

func NewLeaderboardHandler(rankingSvc service.RankingService, log loggerv2.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		rankingSvc: rankingSvc,
		log:        log,
		liveSize:   50,
	}
}

func (h *LeaderboardHandler) Register(r *gin.Engine) {
	r.GET(constants.GetLeaderboardPath, gintool.WrapQueryHandler(h.GetLeaderboard, h.log))
	r.GET(constants.ExportLeaderboardPath, gintool.WrapQueryHandler(h.ExportLeaderboard, h.log))
	r.GET(constants.LiveLeaderboardPath, h.LiveLeaderboard)
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context, param *model.GetLeaderboardParam) {
	start := time.Now()
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.String("sort_by", param.SortBy),
		logger.String("query", param.Query))

	resp, err := h.rankingSvc.GetLeaderboard(ctx, param)
	if err != nil {
		observeLeaderboard(http.StatusInternalServerError, param.SortBy, start)
		gintool.ErrorResponse(c, h.log, "GetLeaderboard failed", err)
		return
	}

	observeLeaderboard(http.StatusOK, param.SortBy, start)
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    resp,
	})
}

func observeLeaderboard(code int, sortBy string, start time.Time) {
	getLeaderboardRequestsTotal.WithLabelValues(strconv.Itoa(code), sortBy).Inc()
	getLeaderboardDurationSeconds.WithLabelValues(strconv.Itoa(code), sortBy).Observe(time.Since(start).Seconds())
}

// ExportLeaderboard 直接将导出内容写入响应
func (h *LeaderboardHandler) ExportLeaderboard(c *gin.Context, param *model.ExportLeaderboardParam) {
	exporterType := factory.RankingExporterType(param.Format)
	ctx := loggerv2.ContextWithFields(c.Request.Context(), logger.String("export_type", param.Format))

	filename := fmt.Sprintf("leaderboard-%s%s", time.Now().Format("20060102-150405"), factory.ExporterSuffixMap[exporterType])
	c.Header("Content-Type", factory.ContentTypeMap[exporterType])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.rankingSvc.Export(ctx, exporterType, c.Writer); err != nil {
		// 已经开始写响应体时无法再返回 JSON
		if c.Writer.Written() {
			h.log.ErrorContext(ctx, "ExportLeaderboard failed after write", logger.Error(err))
			return
		}
		c.Header("Content-Disposition", "")
		gintool.ErrorResponse(c, h.log, "ExportLeaderboard failed", err)
	}
}
