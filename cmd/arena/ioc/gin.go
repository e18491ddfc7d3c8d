package ioc

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/constants"
	"github.com/to404hanga/online_judge_arena/pkg/gintool"
	"github.com/to404hanga/online_judge_arena/web"
	"github.com/to404hanga/online_judge_arena/web/jwt"
	"github.com/to404hanga/online_judge_arena/web/middleware"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// 未配置时需要登录的接口
var defaultProtectedPaths = []string{
	constants.LogoutPath,
	constants.GetProfilePath,
	constants.UpdateProfilePath,
	constants.SubmitSolutionPath,
	constants.GetMySubmissionListPath,
	constants.GetMyBadgesPath,
	constants.GetNotificationListPath,
}

func InitGinServer(
	l loggerv2.Logger,
	jwtHandler jwt.Handler,
	participantHandler *web.ParticipantHandler,
	challengeHandler *web.ChallengeHandler,
	submissionHandler *web.SubmissionHandler,
	leaderboardHandler *web.LeaderboardHandler,
	badgeHandler *web.BadgeHandler,
	notificationHandler *web.NotificationHandler,
	healthHandler *web.HealthHandler,
) *web.GinServer {
	var cfg config.GinConfig
	err := viper.UnmarshalKey(cfg.Key(), &cfg)
	if err != nil {
		log.Panicf("unmarshal gin config failed, err: %v", err)
	}

	// 优先使用环境变量中设置的服务端口
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if len(cfg.ProtectedPaths) == 0 {
		cfg.ProtectedPaths = defaultProtectedPaths
	}

	corsBuilder := middleware.NewCORSMiddlewareBuilder(
		cfg.AllowOrigins,
		cfg.AllowMethods,
		cfg.AllowHeaders,
		cfg.ExposeHeaders,
		cfg.AllowCredentials,
		time.Duration(cfg.MaxAge)*time.Second)
	jwtBuilder := middleware.NewJWTMiddlewareBuilder(jwtHandler, l, cfg.ProtectedPaths)

	engine := gin.Default()
	engine.Use(
		corsBuilder.Build(),
		gintool.ContextMiddleware(),
		jwtBuilder.CheckLogin(),
	)
	if cfg.EnablePprof {
		pprof.Register(engine)
	}

	participantHandler.Register(engine)
	challengeHandler.Register(engine)
	submissionHandler.Register(engine)
	leaderboardHandler.Register(engine)
	badgeHandler.Register(engine)
	notificationHandler.Register(engine)
	healthHandler.Register(engine)

	return &web.GinServer{
		Engine: engine,
		Addr:   cfg.Addr,
	}
}
