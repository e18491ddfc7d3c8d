package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/online_judge_arena/constants"
)

// 退出登录后 ssid 在 refresh token 有效期内保持失效
const revokedSsidKey = "arena:participants:ssid:%s"

var (
	ErrSessionRevoked = errors.New("session has been logged out")
	ErrTokenInvalid   = errors.New("token invalid")
)

type RedisJWTHandler struct {
	client            redis.Cmdable
	signingMethod     jwt.SigningMethod
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
	jwtKey            []byte
	refreshKey        []byte
	now               func() time.Time
}

var _ Handler = (*RedisJWTHandler)(nil)

func NewRedisJWTHandler(client redis.Cmdable, jwtKey []byte, refreshKey []byte, jwtExpiration, refreshExpiration time.Duration) Handler {
	return &RedisJWTHandler{
		client:            client,
		signingMethod:     jwt.SigningMethodHS512,
		jwtExpiration:     jwtExpiration,
		refreshExpiration: refreshExpiration,
		jwtKey:            jwtKey,
		refreshKey:        refreshKey,
		now:               time.Now,
	}
}

func (h *RedisJWTHandler) CheckSession(ctx *gin.Context, ssid string) error {
	cnt, err := h.client.Exists(ctx, fmt.Sprintf(revokedSsidKey, ssid)).Result()
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if cnt > 0 {
		return ErrSessionRevoked
	}
	return nil
}

// SetLoginToken 为新会话同时签发 access token 与 refresh token
func (h *RedisJWTHandler) SetLoginToken(ctx *gin.Context, participantID string) error {
	ssid := uuid.NewString()
	if err := h.setRefreshToken(ctx, participantID, ssid); err != nil {
		return err
	}
	return h.SetJWTToken(ctx, participantID, ssid)
}

// ExtractToken 读取 access token
func (h *RedisJWTHandler) ExtractToken(ctx *gin.Context) string {
	return extract(ctx, constants.HeaderLoginTokenKey)
}

// extract 优先读取 "Bearer <token>" 形式的 header, 其次读取同名 cookie
func extract(ctx *gin.Context, name string) string {
	if auth := ctx.GetHeader(name); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
			return token
		}
	}
	token, err := ctx.Cookie(name)
	if err != nil {
		return ""
	}
	return token
}

func (h *RedisJWTHandler) registered(participantID string, ttl time.Duration) jwt.RegisteredClaims {
	now := h.now()
	return jwt.RegisteredClaims{
		Issuer:    constants.ServiceName,
		Subject:   participantID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (h *RedisJWTHandler) SetJWTToken(ctx *gin.Context, participantID, ssid string) error {
	claims := ParticipantClaims{
		RegisteredClaims: h.registered(participantID, h.jwtExpiration),
		ParticipantID:    participantID,
		Ssid:             ssid,
		UserAgent:        ctx.GetHeader("User-Agent"),
	}
	tokenStr, err := jwt.NewWithClaims(h.signingMethod, claims).SignedString(h.jwtKey)
	if err != nil {
		return fmt.Errorf("sign access token: %w", err)
	}
	writeToken(ctx, constants.HeaderLoginTokenKey, tokenStr, h.jwtExpiration)
	return nil
}

func (h *RedisJWTHandler) setRefreshToken(ctx *gin.Context, participantID, ssid string) error {
	claims := RefreshParticipantClaims{
		RegisteredClaims: h.registered(participantID, h.refreshExpiration),
		ParticipantID:    participantID,
		Ssid:             ssid,
	}
	tokenStr, err := jwt.NewWithClaims(h.signingMethod, claims).SignedString(h.refreshKey)
	if err != nil {
		return fmt.Errorf("sign refresh token: %w", err)
	}
	writeToken(ctx, constants.HeaderRefreshTokenKey, tokenStr, h.refreshExpiration)
	return nil
}

// writeToken 同时写入响应 header 与 httpOnly cookie, ttl <= 0 时清除 cookie
func writeToken(ctx *gin.Context, name, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl <= 0 {
		maxAge = -1
	}
	ctx.Header(name, value)
	ctx.SetCookie(name, value, maxAge, "/", "", false, true)
}

// Refresh 用 refresh token 换发 access token, 会话已退出时拒绝
func (h *RedisJWTHandler) Refresh(ctx *gin.Context) error {
	tokenStr := extract(ctx, constants.HeaderRefreshTokenKey)
	if tokenStr == "" {
		return ErrTokenInvalid
	}
	var rc RefreshParticipantClaims
	token, err := jwt.ParseWithClaims(tokenStr, &rc, func(*jwt.Token) (any, error) {
		return h.refreshKey, nil
	}, jwt.WithValidMethods([]string{h.signingMethod.Alg()}))
	if err != nil || !token.Valid {
		return ErrTokenInvalid
	}
	if err = h.CheckSession(ctx, rc.Ssid); err != nil {
		return err
	}
	return h.SetJWTToken(ctx, rc.ParticipantID, rc.Ssid)
}

// ClearToken 清除客户端 token 并吊销当前会话
func (h *RedisJWTHandler) ClearToken(ctx *gin.Context) error {
	writeToken(ctx, constants.HeaderLoginTokenKey, "", 0)
	writeToken(ctx, constants.HeaderRefreshTokenKey, "", 0)

	uc, err := h.GetParticipantClaims(ctx)
	if err != nil {
		return err
	}
	return h.client.Set(ctx, fmt.Sprintf(revokedSsidKey, uc.Ssid), "", h.refreshExpiration).Err()
}

func (h *RedisJWTHandler) JwtKey() []byte {
	return h.jwtKey
}

func (h *RedisJWTHandler) GetParticipantClaims(ctx *gin.Context) (*ParticipantClaims, error) {
	v, exists := ctx.Get(constants.ContextParticipantClaimsKey)
	if !exists {
		return nil, errors.New("participant claims not found in context")
	}
	uc, ok := v.(ParticipantClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected participant claims type %T", v)
	}
	return &uc, nil
}
