package gintool

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// Param 请求参数约束, P 为 *T
type Param[T any] interface {
	*T
	model.CommonParamInterface
}

// WrapHandler 包装处理函数, 依次绑定 URI / Query / JSON
func WrapHandler[T any, P Param[T]](h func(c *gin.Context, param P), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := P(new(T))
		// 1) URI
		if len(c.Params) > 0 {
			if err := c.ShouldBindUri(param); err != nil {
				badRequest(c, log, "WrapHandler bind uri failed", err)
				return
			}
		}

		// 2) Query/Form
		if c.Request.URL != nil && c.Request.URL.RawQuery != "" {
			if err := c.ShouldBindQuery(param); err != nil {
				badRequest(c, log, "WrapHandler bind query failed", err)
				return
			}
		}

		// 3) JSON
		if err := c.ShouldBindJSON(param); err != nil {
			badRequest(c, log, "WrapHandler bind json failed", err)
			return
		}

		if err := ExtractOperator(c, param); err != nil {
			badRequest(c, log, "WrapHandler ExtractOperator failed", err)
			return
		}

		h(c, param)
	}
}

// WrapQueryHandler 包装处理函数, 只绑定 Query, 用于 GET 请求
func WrapQueryHandler[T any, P Param[T]](h func(c *gin.Context, param P), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := P(new(T))
		if err := c.ShouldBindQuery(param); err != nil {
			badRequest(c, log, "WrapQueryHandler bind query failed", err)
			return
		}

		if err := ExtractOperator(c, param); err != nil {
			badRequest(c, log, "WrapQueryHandler ExtractOperator failed", err)
			return
		}

		h(c, param)
	}
}

// WrapWithoutBodyHandler 包装处理函数, 不绑定任何参数
func WrapWithoutBodyHandler[T any, P Param[T]](h func(c *gin.Context, param P), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := P(new(T))

		if err := ExtractOperator(c, param); err != nil {
			badRequest(c, log, "WrapWithoutBodyHandler ExtractOperator failed", err)
			return
		}

		h(c, param)
	}
}

func badRequest(c *gin.Context, log loggerv2.Logger, msg string, err error) {
	GinResponse(c, &Response{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
	log.ErrorContext(c.Request.Context(), msg, logger.Error(err))
}
