package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time { return c.t }

func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRedisNotificationService(t *testing.T) {
	ctx := context.Background()
	rdb, mem := newMemRedis(t)
	clock := &stepClock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	svc := NewRedisNotificationService(rdb, loggerv2.NewLoggerAdapter(logger.NewNopLogger()), time.Hour, 2)
	svc.now = clock.now

	for i := 1; i <= 3; i++ {
		if err := svc.Notify(ctx, "p1", fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
		clock.advance(10 * time.Minute)
	}
	if err := svc.Notify(ctx, "p2", "other"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	key := fmt.Sprintf(notificationKey, "p1")
	if n := len(mem.list(key)); n != 2 {
		t.Fatalf("stored %d notifications, want 2", n)
	}
	if ttl := mem.ttl(key); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}

	list, err := svc.GetNotificationList(ctx, "p1")
	if err != nil {
		t.Fatalf("GetNotificationList failed: %v", err)
	}
	if len(list) != 2 || list[0].Message != "msg 3" || list[1].Message != "msg 2" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if !list[0].ExpiresAt.Equal(list[0].CreatedAt.Add(time.Hour)) {
		t.Fatalf("expiry = %v, want created + 1h", list[0].ExpiresAt)
	}

	// msg 2 创建于 08:10, 09:10 起过期
	clock.t = time.Date(2025, 3, 1, 9, 10, 0, 0, time.UTC)
	list, err = svc.GetNotificationList(ctx, "p1")
	if err != nil {
		t.Fatalf("GetNotificationList failed: %v", err)
	}
	if len(list) != 1 || list[0].Message != "msg 3" {
		t.Fatalf("expired notification returned: %+v", list)
	}

	clock.advance(time.Hour)
	list, err = svc.GetNotificationList(ctx, "p1")
	if err != nil {
		t.Fatalf("GetNotificationList failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("want empty list, got %+v", list)
	}

	list, err = svc.GetNotificationList(ctx, "nobody")
	if err != nil || len(list) != 0 {
		t.Fatalf("unknown participant: %+v, %v", list, err)
	}
}

func TestRedisNotificationService_SkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	rdb, _ := newMemRedis(t)
	svc := NewRedisNotificationService(rdb, loggerv2.NewLoggerAdapter(logger.NewNopLogger()), 0, 0)
	if svc.ttl != defaultNotificationTTL || svc.limit != defaultNotificationLimit {
		t.Fatalf("defaults not applied: ttl=%v limit=%d", svc.ttl, svc.limit)
	}

	if err := svc.Notify(ctx, "p1", "hello"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if err := rdb.LPush(ctx, fmt.Sprintf(notificationKey, "p1"), "{not json").Err(); err != nil {
		t.Fatalf("LPush failed: %v", err)
	}
	list, err := svc.GetNotificationList(ctx, "p1")
	if err != nil {
		t.Fatalf("GetNotificationList failed: %v", err)
	}
	if len(list) != 1 || list[0].Message != "hello" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func newFirestoreTestClient(t *testing.T) *firestore.Client {
	t.Helper()
	client, err := firestore.NewClient(context.Background(), "arena-test")
	if err != nil {
		t.Fatalf("firestore.NewClient failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestFirestoreNotificationService_Layout(t *testing.T) {
	// 连接是惰性建立的, 这里只检查文档路径, 不发出请求
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:8681")
	}
	client := newFirestoreTestClient(t)

	svc := NewFirestoreNotificationService(client, "", loggerv2.NewLoggerAdapter(logger.NewNopLogger()), 0, 0)
	if svc.collection != "notifications" || svc.ttl != defaultNotificationTTL || svc.limit != defaultNotificationLimit {
		t.Fatalf("defaults not applied: %+v", svc)
	}
	want := "projects/arena-test/databases/(default)/documents/notifications/p1/items"
	if got := svc.items("p1").Path; got != want {
		t.Fatalf("items path = %s, want %s", got, want)
	}

	svc = NewFirestoreNotificationService(client, "arena_inbox", loggerv2.NewLoggerAdapter(logger.NewNopLogger()), time.Hour, 5)
	want = "projects/arena-test/databases/(default)/documents/arena_inbox/p2/items"
	if got := svc.items("p2").Path; got != want {
		t.Fatalf("items path = %s, want %s", got, want)
	}
}

func TestFirestoreNotificationService_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client := newFirestoreTestClient(t)
	collection := fmt.Sprintf("notifications_%d", time.Now().UnixNano())
	clock := &stepClock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	svc := NewFirestoreNotificationService(client, collection, loggerv2.NewLoggerAdapter(logger.NewNopLogger()), time.Hour, 2)
	svc.now = clock.now

	for i := 1; i <= 3; i++ {
		if err := svc.Notify(ctx, "p1", fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
		clock.advance(10 * time.Minute)
	}

	list, err := svc.GetNotificationList(ctx, "p1")
	if err != nil {
		t.Fatalf("GetNotificationList failed: %v", err)
	}
	if len(list) != 2 || list[0].Message != "msg 3" || list[1].Message != "msg 2" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].ParticipantID != "p1" || !list[0].ExpiresAt.Equal(list[0].CreatedAt.Add(time.Hour)) {
		t.Fatalf("unexpected document mapping: %+v", list[0])
	}

	clock.t = time.Date(2025, 3, 1, 9, 10, 0, 0, time.UTC)
	list, err = svc.GetNotificationList(ctx, "p1")
	if err != nil {
		t.Fatalf("GetNotificationList failed: %v", err)
	}
	if len(list) != 1 || list[0].Message != "msg 3" {
		t.Fatalf("expired notification returned: %+v", list)
	}
}
