package job

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const defaultJobTimeout = 10 * time.Minute

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// JobFunc 任务执行函数
type JobFunc func(ctx context.Context) error

// JobConfig 任务配置, 未启用的任务只能通过 RunJobOnce 手动执行
type JobConfig struct {
	Name        string
	CronExpr    string // 秒级 cron 表达式或 @every 等描述符
	JobFunc     JobFunc
	Description string
	Enabled     bool
	Timeout     time.Duration
}

// JobStatus 任务运行状态
type JobStatus struct {
	Name         string        `json:"name"`
	CronExpr     string        `json:"cron_expr"`
	Description  string        `json:"description"`
	Enabled      bool          `json:"enabled"`
	LastRun      *time.Time    `json:"last_run,omitempty"`
	NextRun      *time.Time    `json:"next_run,omitempty"`
	LastDuration time.Duration `json:"last_duration"`
	LastError    string        `json:"last_error,omitempty"`
	RunCount     int64         `json:"run_count"`
	ErrorCount   int64         `json:"error_count"`
}

type scheduledJob struct {
	config  JobConfig
	status  JobStatus
	entryID cron.EntryID // 0 表示未注册到 cron
}

// CronScheduler 同一任务不会并发执行, 上一次未结束时本次触发被跳过
type CronScheduler struct {
	cron   *cron.Cron
	jobs   map[string]*scheduledJob
	log    loggerv2.Logger
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
}

func NewCronScheduler(log loggerv2.Logger) *CronScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cl := cronLogger{log: log}
	return &CronScheduler{
		cron: cron.New(
			cron.WithParser(cronParser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		jobs:   make(map[string]*scheduledJob),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob 校验配置, 启用的任务立即注册, 调度器启动后开始触发
func (s *CronScheduler) AddJob(config *JobConfig) error {
	if config.Name == "" {
		return errors.New("job name cannot be empty")
	}
	if config.JobFunc == nil {
		return fmt.Errorf("job %s has no function", config.Name)
	}
	schedule, err := cronParser.Parse(config.CronExpr)
	if err != nil {
		return fmt.Errorf("job %s has invalid cron expression %q: %w", config.Name, config.CronExpr, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[config.Name]; exists {
		return fmt.Errorf("job %s already exists", config.Name)
	}

	j := &scheduledJob{
		config: *config,
		status: JobStatus{
			Name:        config.Name,
			CronExpr:    config.CronExpr,
			Description: config.Description,
			Enabled:     config.Enabled,
		},
	}
	if j.config.Timeout <= 0 {
		j.config.Timeout = defaultJobTimeout
	}
	if j.config.Enabled {
		name := config.Name
		j.entryID = s.cron.Schedule(schedule, cron.FuncJob(func() { _ = s.execute(name) }))
	}
	s.jobs[config.Name] = j

	s.log.Info("job added",
		logger.String("job", config.Name),
		logger.String("cron_expr", config.CronExpr),
		logger.Bool("enabled", config.Enabled))
	return nil
}

func (s *CronScheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}
	if j.entryID != 0 {
		s.cron.Remove(j.entryID)
	}
	delete(s.jobs, name)
	s.log.Info("job removed", logger.String("job", name))
	return nil
}

func (s *CronScheduler) Start() error {
	s.cron.Start()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		s.refreshNextRun(j)
	}
	s.log.Info("cron scheduler started", logger.Int("jobs", len(s.jobs)))
	return nil
}

// Stop 等待正在执行的任务结束后取消任务上下文
func (s *CronScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.cancel()
	s.log.Info("cron scheduler stopped")
}

// RunJobOnce 立即执行一次, 与定时触发共享状态统计
func (s *CronScheduler) RunJobOnce(name string) error {
	s.mu.RLock()
	_, exists := s.jobs[name]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}
	return s.execute(name)
}

func (s *CronScheduler) execute(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("job %s not found", name)
	}
	fn, timeout := j.config.JobFunc, j.config.Timeout
	start := time.Now()
	j.status.LastRun = &start
	j.status.RunCount++
	s.mu.Unlock()

	ctx := loggerv2.ContextWithFields(s.ctx, logger.String("job", name))
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.log.InfoContext(ctx, "job started")
	err := fn(ctx)
	elapsed := time.Since(start)
	observeJobRun(name, elapsed, err)

	s.mu.Lock()
	j.status.LastDuration = elapsed
	j.status.LastError = ""
	if err != nil {
		j.status.ErrorCount++
		j.status.LastError = err.Error()
	}
	s.refreshNextRun(j)
	s.mu.Unlock()

	if err != nil {
		s.log.ErrorContext(ctx, "job failed", logger.Int64("elapsed_ms", elapsed.Milliseconds()), logger.Error(err))
		return err
	}
	s.log.InfoContext(ctx, "job completed", logger.Int64("elapsed_ms", elapsed.Milliseconds()))
	return nil
}

// refreshNextRun 调用方持有写锁
func (s *CronScheduler) refreshNextRun(j *scheduledJob) {
	if j.entryID == 0 {
		return
	}
	if next := s.cron.Entry(j.entryID).Next; !next.IsZero() {
		j.status.NextRun = &next
	}
}

// GetJobStatuses 按任务名排序返回状态副本
func (s *CronScheduler) GetJobStatuses() []JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobStatus, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j.status)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	return out
}

func (s *CronScheduler) GetJobStatus(name string) (JobStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, exists := s.jobs[name]
	if !exists {
		return JobStatus{}, fmt.Errorf("job %s not found", name)
	}
	return j.status, nil
}

// cronLogger 将 cron 内部日志接入 logger
type cronLogger struct {
	log loggerv2.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, logger.Any("kv", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, logger.Any("kv", keysAndValues), logger.Error(err))
}
