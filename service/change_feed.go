package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const leaderboardChannel = "arena:leaderboard:changed"

// ChangeFeed 排行榜变更通知, 订阅方只收到"有变化"的信号, 需要自行重新读取
type ChangeFeed interface {
	Publish(ctx context.Context) error
	// Subscribe 返回的 channel 在 ctx 结束后关闭
	Subscribe(ctx context.Context) (<-chan struct{}, error)
}

type RedisChangeFeed struct {
	client *redis.Client
	log    loggerv2.Logger
}

var _ ChangeFeed = (*RedisChangeFeed)(nil)

func NewRedisChangeFeed(client *redis.Client, log loggerv2.Logger) *RedisChangeFeed {
	return &RedisChangeFeed{client: client, log: log}
}

func (f *RedisChangeFeed) Publish(ctx context.Context) error {
	if err := f.client.Publish(ctx, leaderboardChannel, "1").Err(); err != nil {
		return fmt.Errorf("Publish failed: %w", err)
	}
	return nil
}

func (f *RedisChangeFeed) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	sub := f.client.Subscribe(ctx, leaderboardChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("Subscribe failed: %w", err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				// 合并连续的变更信号
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

// LocalChangeFeed 进程内广播
type LocalChangeFeed struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

var _ ChangeFeed = (*LocalChangeFeed)(nil)

func NewLocalChangeFeed() *LocalChangeFeed {
	return &LocalChangeFeed{subs: make(map[chan struct{}]struct{})}
}

func (f *LocalChangeFeed) Publish(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (f *LocalChangeFeed) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, ch)
		close(ch)
		f.mu.Unlock()
	}()
	return ch, nil
}
