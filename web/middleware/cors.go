package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type CORSMiddlewareBuilder struct {
	config cors.Config
}

// NewCORSMiddlewareBuilder allowOrigins 含 "*" 时放行所有来源, 此时不允许携带凭证
func NewCORSMiddlewareBuilder(allowOrigins, allowMethods, allowHeaders, exposeHeaders []string, allowCredentials bool, maxAge time.Duration) *CORSMiddlewareBuilder {
	cfg := cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     allowMethods,
		AllowHeaders:     allowHeaders,
		ExposeHeaders:    exposeHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	}
	if slices.Contains(allowOrigins, "*") {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return &CORSMiddlewareBuilder{config: cfg}
}

// Build 未配置任何来源时不处理跨域请求
func (b *CORSMiddlewareBuilder) Build() gin.HandlerFunc {
	if !b.config.AllowAllOrigins && len(b.config.AllowOrigins) == 0 {
		return func(ctx *gin.Context) {
			ctx.Next()
		}
	}
	return cors.New(b.config)
}
