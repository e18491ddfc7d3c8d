package ioc

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/web/jwt"
)

func InitJWTHandler(client redis.Cmdable) jwt.Handler {
	var cfg config.JWTConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal jwt config failed: %v", err)
	}
	if cfg.JwtKey == "" || cfg.RefreshKey == "" {
		log.Panicf("jwt keys must not be empty")
	}
	return jwt.NewRedisJWTHandler(client,
		[]byte(cfg.JwtKey),
		[]byte(cfg.RefreshKey),
		time.Duration(cfg.JwtExpiration)*time.Second,
		time.Duration(cfg.RefreshExpiration)*time.Second)
}
