package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/to404hanga/online_judge_arena/constants"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type HealthHandler struct {
	log loggerv2.Logger
}

var _ Handler = (*HealthHandler)(nil)

func NewHealthHandler(log loggerv2.Logger) *HealthHandler {
	return &HealthHandler{
		log: log,
	}
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET(constants.HealthPath, h.HealthCheck)
	r.GET(constants.MetricsPath, gin.WrapH(promhttp.Handler()))
}

func (h *HealthHandler) HealthCheck(ctx *gin.Context) {
	h.log.Debug("health check")
	ctx.Status(http.StatusOK)
}
