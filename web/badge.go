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

type BadgeHandler struct {
	badgeSvc service.BadgeService
	log      loggerv2.Logger
}

var _ Handler = (*BadgeHandler)(nil)

func NewBadgeHandler(badgeSvc service.BadgeService, log loggerv2.Logger) *BadgeHandler {
	return &BadgeHandler{
		badgeSvc: badgeSvc,
		log:      log,
	}
}

func (h *BadgeHandler) Register(r *gin.Engine) {
	r.GET(constants.GetBadgeCatalogPath, gintool.WrapWithoutBodyHandler(h.GetBadgeCatalog, h.log))
	r.GET(constants.GetMyBadgesPath, gintool.WrapWithoutBodyHandler(h.GetMyBadges, h.log))
}

// GetBadgeCatalog 未登录时所有徽章均为未获得
func (h *BadgeHandler) GetBadgeCatalog(c *gin.Context, param *model.GetBadgeCatalogParam) {
	list, err := h.badgeSvc.GetBadgeCatalog(c.Request.Context(), param.Operator)
	if err != nil {
		gintool.ErrorResponse(c, h.log, "GetBadgeCatalog failed", err)
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    model.GetBadgeCatalogResponse{List: list},
	})
}

func (h *BadgeHandler) GetMyBadges(c *gin.Context, param *model.GetMyBadgesParam) {
	list, err := h.badgeSvc.GetMyBadges(c.Request.Context(), param.Operator)
	if err != nil {
		gintool.ErrorResponse(c, h.log, "GetMyBadges failed", err)
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    model.GetMyBadgesResponse{List: list},
	})
}
