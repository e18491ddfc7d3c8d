package gintool

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_arena/constants"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/web/jwt"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// GinContextToLoggerContext 将 Gin 上下文转换为 Logger 上下文
func GinContextToLoggerContext(c *gin.Context) context.Context {
	fields := make([]logger.Field, 0, 2)

	if requestID := c.GetHeader(constants.HeaderRequestIDKey); requestID != "" {
		fields = append(fields, logger.String("RequestID", requestID))
	}
	if claims, ok := ParticipantClaims(c); ok {
		fields = append(fields, logger.String("ParticipantID", claims.ParticipantID))
	}

	return loggerv2.ContextWithFields(c.Request.Context(), fields...)
}

// ParticipantClaims 取出 JWT 中间件写入的登录信息
func ParticipantClaims(c *gin.Context) (jwt.ParticipantClaims, bool) {
	v, exists := c.Get(constants.ContextParticipantClaimsKey)
	if !exists {
		return jwt.ParticipantClaims{}, false
	}
	claims, ok := v.(jwt.ParticipantClaims)
	return claims, ok
}

// ExtractOperator 从登录信息提取操作人 ID, 未登录时操作人为空
func ExtractOperator(c *gin.Context, p model.CommonParamInterface) error {
	v, exists := c.Get(constants.ContextParticipantClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(jwt.ParticipantClaims)
	if !ok {
		return fmt.Errorf("participant claims type assertion failed")
	}
	p.SetOperator(claims.ParticipantID)
	return nil
}
