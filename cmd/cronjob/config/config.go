package config

type BaseCronJobConfig struct {
	CronExpr string `yaml:"cronExpr" mapstructure:"cronExpr"`
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 毫秒
}

type BadgeSweepConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`
}

func (BadgeSweepConfig) Key() string {
	return "badgeSweep"
}

type LeaderboardSnapshotConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`

	Format string `yaml:"format" mapstructure:"format"` // csv | xlsx
}

func (LeaderboardSnapshotConfig) Key() string {
	return "leaderboardSnapshot"
}

type SnapshotCleanerConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`

	RetentionDays int `yaml:"retentionDays" mapstructure:"retentionDays"`
}

func (SnapshotCleanerConfig) Key() string {
	return "snapshotCleaner"
}

type MetricsConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"` // 为空时不暴露 /metrics
}

func (MetricsConfig) Key() string {
	return "cronjobMetrics"
}
