package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/pkg404/gotools/retry"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

//go:embed lua/unlock.lua
var unlockScript string

var ErrLockTimeout = errors.New("acquire lock timeout")

// Locker 分布式互斥锁, 返回的 unlock 必须调用
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

const participantLockKey = "arena:lock:participant:%s"

type RedisLocker struct {
	rdb           redis.Cmdable
	log           loggerv2.Logger
	ttl           time.Duration
	retryInterval time.Duration
	maxWait       time.Duration
}

var _ Locker = (*RedisLocker)(nil)

func NewRedisLocker(rdb redis.Cmdable, log loggerv2.Logger, ttl, retryInterval, maxWait time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if retryInterval <= 0 {
		retryInterval = 50 * time.Millisecond
	}
	if maxWait <= 0 {
		maxWait = 5 * time.Second
	}
	return &RedisLocker{
		rdb:           rdb,
		log:           log,
		ttl:           ttl,
		retryInterval: retryInterval,
		maxWait:       maxWait,
	}
}

var errLockBusy = errors.New("lock held by another owner")

// Lock 按固定间隔重试获取锁直到超时, 锁值为随机 token, 只有持有者能释放
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	var setErr error
	err := retry.Do(ctx, func() error {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			setErr = err
			return nil
		}
		if !ok {
			return errLockBusy
		}
		return nil
	},
		retry.WithRetryTimes(int(l.maxWait/l.retryInterval)+1),
		retry.WithBaseInterval(l.retryInterval),
		retry.WithBackoffMultiplier(1),
	)
	if setErr != nil {
		return nil, fmt.Errorf("Lock failed at setnx %s: %w", key, setErr)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
	}

	return func() {
		// 使用独立 context, 避免调用方 context 已取消导致锁无法释放
		uctx, ucancel := context.WithTimeout(context.Background(), time.Second)
		defer ucancel()
		if err := l.rdb.Eval(uctx, unlockScript, []string{key}, token).Err(); err != nil {
			l.log.Error("unlock failed", logger.String("key", key), logger.Error(err))
		}
	}, nil
}

// LocalLocker 进程内锁, 未配置 Redis 时使用
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

var _ Locker = (*LocalLocker)(nil)

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
	}
}
