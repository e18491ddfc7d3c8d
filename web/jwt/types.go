package jwt

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Handler interface {
	ExtractToken(ctx *gin.Context) string
	SetLoginToken(ctx *gin.Context, participantID string) error
	SetJWTToken(ctx *gin.Context, participantID, ssid string) error
	CheckSession(ctx *gin.Context, ssid string) error
	// Refresh 用 refresh token 换发 access token
	Refresh(ctx *gin.Context) error
	ClearToken(ctx *gin.Context) error

	JwtKey() []byte
	GetParticipantClaims(ctx *gin.Context) (*ParticipantClaims, error)
}

type ParticipantClaims struct {
	jwt.RegisteredClaims
	ParticipantID string
	Ssid          string
	UserAgent     string
}

type RefreshParticipantClaims struct {
	jwt.RegisteredClaims
	ParticipantID string
	Ssid          string
}
