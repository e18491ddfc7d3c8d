package ioc

import (
	"log"

	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func InitLogger() loggerv2.Logger {
	var cfg config.LoggerConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal logger config failed: %v", err)
	}

	// 文件输出走 pkg404 的输出配置, 控制台输出按配置级别构建 zap
	if cfg.FilePath != "" {
		output := loggerv2.OutputFile
		if cfg.Console {
			output = loggerv2.OutputBoth
		}
		l, err := loggerv2.NewZapContextLoggerWithConfig(loggerv2.LoggerConfig{
			Output: loggerv2.OutputConfig{
				Type:           output,
				FilePath:       cfg.FilePath,
				AutoCreateFile: true,
			},
			Development: cfg.Development,
		})
		if err != nil {
			log.Panicf("init file logger failed: %v", err)
		}
		return l
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			log.Panicf("parse logger level failed: %v", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	if cfg.Encoding != "" {
		zcfg.Encoding = cfg.Encoding
	}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zl, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log.Panicf("init logger failed: %v", err)
	}
	return loggerv2.NewZapContextLogger(zl)
}
