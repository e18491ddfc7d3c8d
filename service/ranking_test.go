package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/to404hanga/online_judge_arena/engine/ledger"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/service/exporter/factory"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type memSnapshotStore struct {
	objects map[string][]byte
}

func (s *memSnapshotStore) PutObject(ctx context.Context, bucketName, objectKey string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[bucketName+"/"+objectKey] = data
	return nil
}

func (s *memSnapshotStore) GetPresignedDownloadURL(ctx context.Context, bucketName, objectKey string, durationSeconds int) (string, error) {
	return "https://minio.local/" + bucketName + "/" + objectKey, nil
}

func seedLeaderboard(t *testing.T) *memParticipantRepo {
	t.Helper()
	repo := newMemParticipantRepo()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, p := range []model.Participant{
		{ID: "a", Name: "Alice", Institution: "MIT", Score: 150, SolvedProblems: 2, PenaltyTime: 30},
		{ID: "b", Name: "Bob", Institution: "Stanford", Score: 150, SolvedProblems: 2, PenaltyTime: 20},
		{ID: "c", Name: "Carol", Institution: "MIT", Score: 50, SolvedProblems: 1, PenaltyTime: 5},
	} {
		p.Email = p.ID + "@example.com"
		p.StudentNumber = "SN" + p.ID
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(context.Background(), &p); err != nil {
			t.Fatalf("create participant failed: %v", err)
		}
	}
	return repo
}

func TestRankingService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()
	svc := NewRankingService(seedLeaderboard(t), nil, NewLocalChangeFeed(), loggerv2.NewLoggerAdapter(logger.NewNopLogger()))

	resp, err := svc.GetLeaderboard(ctx, &model.GetLeaderboardParam{})
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if resp.Total != 3 || resp.Page != 1 || resp.PageSize != 20 {
		t.Fatalf("unexpected page: %+v", resp)
	}
	var order []string
	for _, e := range resp.List {
		order = append(order, e.ParticipantID)
	}
	if strings.Join(order, ",") != "b,a,c" {
		t.Fatalf("order = %v, want b,a,c", order)
	}

	resp, err = svc.GetLeaderboard(ctx, &model.GetLeaderboardParam{Query: "mit"})
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if resp.Total != 2 || resp.List[0].Rank != 2 || resp.List[1].Rank != 3 {
		t.Fatalf("filtered view lost canonical ranks: %+v", resp.List)
	}

	resp, err = svc.GetLeaderboard(ctx, &model.GetLeaderboardParam{
		PageParam: model.PageParam{Page: 2, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(resp.List) != 1 || resp.List[0].ParticipantID != "c" {
		t.Fatalf("unexpected second page: %+v", resp.List)
	}

	rank, err := svc.RankOf(ctx, "a")
	if err != nil || rank != 2 {
		t.Fatalf("RankOf(a) = %d, %v", rank, err)
	}
}

func TestRankingService_InvalidatePublishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := NewRankingService(seedLeaderboard(t), nil, NewLocalChangeFeed(), loggerv2.NewLoggerAdapter(logger.NewNopLogger()))

	ch, err := svc.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if err = svc.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no change signal received")
	}
}

func TestRankingService_CacheHit(t *testing.T) {
	ctx := context.Background()
	rdb, _ := newMemRedis(t)
	repo := seedLeaderboard(t)
	svc := NewRankingService(repo, rdb, NewLocalChangeFeed(), loggerv2.NewLoggerAdapter(logger.NewNopLogger()))

	if _, err := svc.GetStandings(ctx); err != nil {
		t.Fatalf("GetStandings failed: %v", err)
	}
	// 未失效时读缓存, 库内的变化不可见
	if _, err := repo.ApplyDelta(ctx, ledger.Delta{ParticipantID: "c", ProblemID: "p9", Score: 500, SolvedProblems: 1}); err != nil {
		t.Fatalf("ApplyDelta failed: %v", err)
	}
	standings, err := svc.GetStandings(ctx)
	if err != nil {
		t.Fatalf("GetStandings failed: %v", err)
	}
	if standings[0].Participant.ID != "b" {
		t.Fatalf("cached leader = %s, want b", standings[0].Participant.ID)
	}

	if err = svc.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	standings, err = svc.GetStandings(ctx)
	if err != nil {
		t.Fatalf("GetStandings failed: %v", err)
	}
	if standings[0].Participant.ID != "c" || standings[0].Participant.Score != 550 {
		t.Fatalf("leader after invalidate = %+v, want c with 550", standings[0].Participant)
	}
}

func TestRankingService_StaleWriteAfterInvalidate(t *testing.T) {
	ctx := context.Background()
	rdb, _ := newMemRedis(t)
	repo := seedLeaderboard(t)
	svc := NewRankingService(repo, rdb, NewLocalChangeFeed(), loggerv2.NewLoggerAdapter(logger.NewNopLogger()))
	impl := svc.(*RankingServiceImpl)

	// 读者先取得版本号并读到旧数据
	version, _, ok := impl.loadCache(ctx)
	if ok {
		t.Fatal("cache should be empty")
	}
	old, err := svc.GetStandings(ctx)
	if err != nil {
		t.Fatalf("GetStandings failed: %v", err)
	}

	// 写者提交并失效, 之后读者才写回旧结果
	if _, err = repo.ApplyDelta(ctx, ledger.Delta{ParticipantID: "c", ProblemID: "p9", Score: 500, SolvedProblems: 1}); err != nil {
		t.Fatalf("ApplyDelta failed: %v", err)
	}
	if err = svc.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	impl.storeCache(ctx, version, old)

	standings, err := svc.GetStandings(ctx)
	if err != nil {
		t.Fatalf("GetStandings failed: %v", err)
	}
	if standings[0].Participant.ID != "c" {
		t.Fatalf("stale standings served after invalidate: leader %s", standings[0].Participant.ID)
	}
	rank, err := svc.RankOf(ctx, "c")
	if err != nil || rank != 1 {
		t.Fatalf("RankOf(c) = %d, %v", rank, err)
	}
}

func TestRankingService_Export(t *testing.T) {
	ctx := context.Background()
	store := &memSnapshotStore{objects: make(map[string][]byte)}
	svc := NewRankingService(seedLeaderboard(t), nil, nil, loggerv2.NewLoggerAdapter(logger.NewNopLogger()),
		WithSnapshotStore(store, "arena", 60), WithExportDir(t.TempDir()))

	var buf bytes.Buffer
	if err := svc.Export(ctx, factory.CSVRankingExporter, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 4 {
		t.Fatalf("csv lines = %d, want 4:\n%s", lines, buf.String())
	}

	if err := svc.Export(ctx, factory.RankingExporterType("pdf"), &buf); err == nil {
		t.Fatal("expected error for unsupported format")
	}

	info, err := svc.UploadSnapshot(ctx, factory.CSVRankingExporter)
	if err != nil {
		t.Fatalf("UploadSnapshot failed: %v", err)
	}
	if !strings.HasPrefix(info.ObjectKey, SnapshotPrefix) || !strings.HasSuffix(info.ObjectKey, ".csv") {
		t.Fatalf("unexpected object key %s", info.ObjectKey)
	}
	if _, ok := store.objects["arena/"+info.ObjectKey]; !ok {
		t.Fatalf("object not stored: %v", info)
	}

	path, err := svc.ExportToFile(ctx, factory.XLSXRankingExporter)
	if err != nil || !strings.HasSuffix(path, ".xlsx") {
		t.Fatalf("ExportToFile = %s, %v", path, err)
	}
}
