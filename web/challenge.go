package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_arena/constants"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/pkg/gintool"
	"github.com/to404hanga/online_judge_arena/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type ChallengeHandler struct {
	challengeSvc service.ChallengeService
	log          loggerv2.Logger
}

var _ Handler = (*ChallengeHandler)(nil)

func NewChallengeHandler(challengeSvc service.ChallengeService, log loggerv2.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		challengeSvc: challengeSvc,
		log:          log,
	}
}

func (h *ChallengeHandler) Register(r *gin.Engine) {
	r.GET(constants.GetChallengeListPath, gintool.WrapWithoutBodyHandler(h.GetChallengeList, h.log))
}

func (h *ChallengeHandler) GetChallengeList(c *gin.Context, param *model.GetChallengeListParam) {
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.GetChallengeListResponse{
			List: h.challengeSvc.GetChallengeList(c.Request.Context()),
		},
	})
}
