package gintool

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/to404hanga/online_judge_arena/constants"
)

// ContextMiddleware 补全请求 ID 并把日志字段写入请求上下文
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(constants.HeaderRequestIDKey) == "" {
			c.Request.Header.Set(constants.HeaderRequestIDKey, uuid.NewString())
		}
		c.Header(constants.HeaderRequestIDKey, c.GetHeader(constants.HeaderRequestIDKey))
		c.Request = c.Request.WithContext(GinContextToLoggerContext(c))
		c.Next()
	}
}
