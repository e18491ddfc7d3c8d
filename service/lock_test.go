package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func TestLocalLocker(t *testing.T) {
	l := NewLocalLocker()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "p1")
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Fatalf("critical section entered by %d goroutines at once", maxSeen)
	}
}

func TestLocalLockerTimeout(t *testing.T) {
	l := NewLocalLocker()
	unlock, err := l.Lock(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	defer unlock()

	if other, err := l.Lock(context.Background(), "p2"); err != nil {
		t.Fatalf("independent key blocked: %v", err)
	} else {
		other()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "p1"); !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("err = %v, want ErrLockTimeout", err)
	}
}

func TestRedisLocker(t *testing.T) {
	rdb, mem := newMemRedis(t)
	l := NewRedisLocker(rdb, loggerv2.NewLoggerAdapter(logger.NewNopLogger()), time.Minute, 5*time.Millisecond, 30*time.Millisecond)
	ctx := context.Background()
	key := fmt.Sprintf(participantLockKey, "p1")

	unlock, err := l.Lock(ctx, key)
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	token, held := mem.get(key)
	if !held || mem.ttl(key) != time.Minute {
		t.Fatalf("lock not stored with ttl: held=%v ttl=%v", held, mem.ttl(key))
	}

	if _, err = l.Lock(ctx, key); !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("err = %v, want ErrLockTimeout", err)
	}
	if v, _ := mem.get(key); v != token {
		t.Fatal("waiting locker overwrote the holder's token")
	}

	unlock()
	if _, held = mem.get(key); held {
		t.Fatal("unlock did not release the key")
	}
	again, err := l.Lock(ctx, key)
	if err != nil {
		t.Fatalf("Lock after release failed: %v", err)
	}
	again()
}

func TestRedisLocker_UnlockKeepsForeignToken(t *testing.T) {
	rdb, mem := newMemRedis(t)
	l := NewRedisLocker(rdb, loggerv2.NewLoggerAdapter(logger.NewNopLogger()), time.Minute, 5*time.Millisecond, 30*time.Millisecond)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	// 锁过期后被其他持有者取得
	if err = rdb.Set(ctx, "k", "other", 0).Err(); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	unlock()
	if v, _ := mem.get("k"); v != "other" {
		t.Fatalf("unlock released a lock it no longer holds: %q", v)
	}
}
