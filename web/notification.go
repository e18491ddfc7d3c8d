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

type NotificationHandler struct {
	notificationSvc service.NotificationService
	log             loggerv2.Logger
}

var _ Handler = (*NotificationHandler)(nil)

func NewNotificationHandler(notificationSvc service.NotificationService, log loggerv2.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationSvc: notificationSvc,
		log:             log,
	}
}

func (h *NotificationHandler) Register(r *gin.Engine) {
	r.GET(constants.GetNotificationListPath, gintool.WrapWithoutBodyHandler(h.GetNotificationList, h.log))
}

func (h *NotificationHandler) GetNotificationList(c *gin.Context, param *model.GetNotificationListParam) {
	list, err := h.notificationSvc.GetNotificationList(c.Request.Context(), param.Operator)
	if err != nil {
		gintool.ErrorResponse(c, h.log, "GetNotificationList failed", err)
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    model.GetNotificationListResponse{List: list},
	})
}
