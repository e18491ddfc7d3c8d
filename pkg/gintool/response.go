package gintool

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_arena/constants"
	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type Response struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id"`
}

func GinResponse(c *gin.Context, resp *Response) {
	resp.RequestID = c.GetHeader(constants.HeaderRequestIDKey)
	c.JSON(http.StatusOK, resp)
}

// ErrorResponse 业务错误按类型映射为响应码, 其余错误统一返回 500 并记录日志
func ErrorResponse(c *gin.Context, log loggerv2.Logger, msg string, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		if appErr.Type == errs.TypeInternal {
			log.ErrorContext(c.Request.Context(), msg, logger.Error(err))
		} else {
			log.WarnContext(c.Request.Context(), msg, logger.Error(err))
		}
		GinResponse(c, &Response{
			Code:      appErr.HTTPStatus(),
			Message:   appErr.GetUserMessage(),
			ErrorCode: appErr.Code,
		})
		return
	}

	log.ErrorContext(c.Request.Context(), msg, logger.Error(err))
	GinResponse(c, &Response{
		Code:      http.StatusInternalServerError,
		Message:   "internal error",
		ErrorCode: errs.CodeInternal,
	})
}
