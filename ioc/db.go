package ioc

import (
	"log"

	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_arena/config"
	"github.com/to404hanga/online_judge_arena/repository"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(l loggerv2.Logger) *gorm.DB {
	var cfg config.DBConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal db config failed: %v", err)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		log.Panicf("unsupported db driver: %s", cfg.Driver)
	}

	// 唯一索引冲突统一翻译为 gorm.ErrDuplicatedKey
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Panicf("open db failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Panicf("get sql db failed: %v", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.AutoMigrate {
		if err = repository.AutoMigrate(db); err != nil {
			log.Panicf("auto migrate failed: %v", err)
		}
		l.Info("db schema migrated", logger.String("driver", dialector.Name()))
	}
	return db
}

func InitParticipantRepository(db *gorm.DB) repository.ParticipantRepository {
	return repository.NewParticipantRepository(db)
}

func InitSubmissionRepository(db *gorm.DB) repository.SubmissionRepository {
	return repository.NewSubmissionRepository(db)
}
