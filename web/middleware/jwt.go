package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/to404hanga/online_judge_arena/constants"
	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/pkg/gintool"
	arenajwt "github.com/to404hanga/online_judge_arena/web/jwt"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type JWTMiddlewareBuilder struct {
	arenajwt.Handler
	log            loggerv2.Logger
	protectedPaths []string
}

func NewJWTMiddlewareBuilder(handler arenajwt.Handler, log loggerv2.Logger, protectedPaths []string) *JWTMiddlewareBuilder {
	return &JWTMiddlewareBuilder{
		Handler:        handler,
		log:            log,
		protectedPaths: protectedPaths,
	}
}

func (m *JWTMiddlewareBuilder) protected(path string) bool {
	for _, p := range m.protectedPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// CheckLogin 受保护路径要求登录, 失败时直接返回 401, 不进入业务处理
// 非受保护路径携带了有效 token 时同样写入登录信息
func (m *JWTMiddlewareBuilder) CheckLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		protected := m.protected(ctx.Request.URL.Path)

		tokenStr := m.ExtractToken(ctx)
		if tokenStr == "" {
			if protected {
				m.unauthorized(ctx, "token not found")
				return
			}
			ctx.Next()
			return
		}

		var uc arenajwt.ParticipantClaims
		token, err := jwt.ParseWithClaims(tokenStr, &uc, func(t *jwt.Token) (any, error) {
			return m.JwtKey(), nil
		})
		if err == nil && (token == nil || !token.Valid) {
			err = jwt.ErrTokenInvalidClaims
		}
		if err == nil {
			err = m.CheckSession(ctx, uc.Ssid)
		}
		if err != nil {
			if protected {
				m.log.WarnContext(ctx, "CheckLogin failed", logger.Error(err))
				m.unauthorized(ctx, err.Error())
				return
			}
			ctx.Next()
			return
		}

		ctx.Set(constants.ContextParticipantClaimsKey, uc)
		ctx.Next()
	}
}

func (m *JWTMiddlewareBuilder) unauthorized(ctx *gin.Context, reason string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, &gintool.Response{
		Code:      http.StatusUnauthorized,
		Message:   "unauthenticated: " + reason,
		ErrorCode: errs.CodeUnauthenticated,
		RequestID: ctx.GetHeader(constants.HeaderRequestIDKey),
	})
}
