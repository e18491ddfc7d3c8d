package config

import (
	"fmt"
	"time"
)

type LoggerConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
	Encoding    string `yaml:"encoding" mapstructure:"encoding"` // json | console
	FilePath    string `yaml:"filePath" mapstructure:"filePath"`   // 非空时写文件
	Console     bool   `yaml:"console" mapstructure:"console"`     // 写文件时是否同时输出到控制台
}

func (LoggerConfig) Key() string {
	return "logger"
}

type GinConfig struct {
	Addr             string   `yaml:"addr" mapstructure:"addr"`
	AllowOrigins     []string `yaml:"allowOrigins" mapstructure:"allowOrigins"`
	AllowMethods     []string `yaml:"allowMethods" mapstructure:"allowMethods"`
	AllowHeaders     []string `yaml:"allowHeaders" mapstructure:"allowHeaders"`
	ExposeHeaders    []string `yaml:"exposeHeaders" mapstructure:"exposeHeaders"`
	AllowCredentials bool     `yaml:"allowCredentials" mapstructure:"allowCredentials"`
	MaxAge           int      `yaml:"maxAge" mapstructure:"maxAge"` // 单位: 秒
	ProtectedPaths   []string `yaml:"protectedPaths" mapstructure:"protectedPaths"`
	EnablePprof      bool     `yaml:"enablePprof" mapstructure:"enablePprof"`
}

func (GinConfig) Key() string {
	return "gin"
}

type DBConfig struct {
	Driver       string `yaml:"driver" mapstructure:"driver"` // mysql | postgres
	DSN          string `yaml:"dsn" mapstructure:"dsn"`
	MaxOpenConns int    `yaml:"maxOpenConns" mapstructure:"maxOpenConns"`
	MaxIdleConns int    `yaml:"maxIdleConns" mapstructure:"maxIdleConns"`
	AutoMigrate  bool   `yaml:"autoMigrate" mapstructure:"autoMigrate"`
}

func (DBConfig) Key() string {
	return "db"
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

func (RedisConfig) Key() string {
	return "redis"
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled" mapstructure:"enabled"` // 关闭时提交在请求内同步计分
	Addrs   []string `yaml:"addrs" mapstructure:"addrs"`
	GroupID string   `yaml:"groupId" mapstructure:"groupId"`
	// 单条消息本地重试, 耗尽后不提交位点等待重新投递
	RetryTimes      int `yaml:"retryTimes" mapstructure:"retryTimes"`
	RetryIntervalMs int `yaml:"retryIntervalMs" mapstructure:"retryIntervalMs"`
}

func (KafkaConfig) Key() string {
	return "kafka"
}

type JWTConfig struct {
	JwtKey            string `yaml:"jwtKey" mapstructure:"jwtKey"`
	RefreshKey        string `yaml:"refreshKey" mapstructure:"refreshKey"`
	JwtExpiration     int    `yaml:"jwtExpiration" mapstructure:"jwtExpiration"`         // 单位: 秒
	RefreshExpiration int    `yaml:"refreshExpiration" mapstructure:"refreshExpiration"` // 单位: 秒
}

func (JWTConfig) Key() string {
	return "jwt"
}

// CompetitionConfig 比赛时间与罚时配置, 时间格式 RFC3339
type CompetitionConfig struct {
	Name                       string `yaml:"name" mapstructure:"name"`
	StartTime                  string `yaml:"startTime" mapstructure:"startTime"`
	EndTime                    string `yaml:"endTime" mapstructure:"endTime"`
	WrongAttemptPenaltyMinutes int    `yaml:"wrongAttemptPenaltyMinutes" mapstructure:"wrongAttemptPenaltyMinutes"`
}

func (CompetitionConfig) Key() string {
	return "competition"
}

// Window 解析比赛起止时间, 未配置的一端返回零值
func (c CompetitionConfig) Window() (start, end time.Time, err error) {
	if c.StartTime != "" {
		if start, err = time.Parse(time.RFC3339, c.StartTime); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse competition.startTime failed: %w", err)
		}
	}
	if c.EndTime != "" {
		if end, err = time.Parse(time.RFC3339, c.EndTime); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse competition.endTime failed: %w", err)
		}
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("competition.endTime must be after startTime")
	}
	return start, end, nil
}

type MinIOConfig struct {
	Endpoint                string `yaml:"endpoint" mapstructure:"endpoint"`
	UseSSL                  bool   `yaml:"useSSL" mapstructure:"useSSL"`
	Bucket                  string `yaml:"bucket" mapstructure:"bucket"`
	DownloadDurationSeconds int    `yaml:"downloadDurationSeconds" mapstructure:"downloadDurationSeconds"`
}

func (MinIOConfig) Key() string {
	return "minio"
}

type ExporterConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

func (ExporterConfig) Key() string {
	return "exporter"
}

type NotificationConfig struct {
	Sink              string `yaml:"sink" mapstructure:"sink"` // redis | firestore
	TTLSeconds        int    `yaml:"ttlSeconds" mapstructure:"ttlSeconds"`
	MaxPerParticipant int    `yaml:"maxPerParticipant" mapstructure:"maxPerParticipant"`

	FirestoreProjectID  string `yaml:"firestoreProjectId" mapstructure:"firestoreProjectId"`
	FirestoreCollection string `yaml:"firestoreCollection" mapstructure:"firestoreCollection"`
	CredentialsFile     string `yaml:"credentialsFile" mapstructure:"credentialsFile"`
}

func (NotificationConfig) Key() string {
	return "notification"
}

type JudgeConfig struct {
	Seed       int64   `yaml:"seed" mapstructure:"seed"` // 0 表示使用当前时间
	AcceptRate float64 `yaml:"acceptRate" mapstructure:"acceptRate"`
}

func (JudgeConfig) Key() string {
	return "judge"
}

type RankingConfig struct {
	CacheTTLSeconds int `yaml:"cacheTTLSeconds" mapstructure:"cacheTTLSeconds"`
}

func (RankingConfig) Key() string {
	return "ranking"
}

type LockConfig struct {
	TTL           int `yaml:"ttl" mapstructure:"ttl"`                     // 单位: 毫秒
	RetryInterval int `yaml:"retryInterval" mapstructure:"retryInterval"` // 单位: 毫秒
	MaxWait       int `yaml:"maxWait" mapstructure:"maxWait"`             // 单位: 毫秒
}

func (LockConfig) Key() string {
	return "lock"
}

const (
	ChallengesKey = "challenges"
	BadgesKey     = "badges"
)
