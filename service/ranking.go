package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/online_judge_arena/engine/ranking"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/repository"
	"github.com/to404hanga/online_judge_arena/service/exporter/factory"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type RankingService interface {
	// GetStandings 规范排名, 优先读缓存
	GetStandings(ctx context.Context) ([]ranking.Standing, error)
	// GetLeaderboard 排序/过滤/分页后的排行榜
	GetLeaderboard(ctx context.Context, param *model.GetLeaderboardParam) (*model.GetLeaderboardResponse, error)
	// RankOf 选手的规范排名, 不存在返回 0
	RankOf(ctx context.Context, participantID string) (int, error)
	// Invalidate 删除缓存并广播变更
	Invalidate(ctx context.Context) error
	// Subscribe 订阅排行榜变更
	Subscribe(ctx context.Context) (<-chan struct{}, error)
	// Export 导出排行榜
	Export(ctx context.Context, exporterType factory.RankingExporterType, w io.Writer) error
	// ExportToFile 导出到本地目录, 返回文件路径
	ExportToFile(ctx context.Context, exporterType factory.RankingExporterType) (string, error)
	// UploadSnapshot 导出并上传到对象存储, 返回对象 key 与预签名下载地址
	UploadSnapshot(ctx context.Context, exporterType factory.RankingExporterType) (*SnapshotInfo, error)
}

// SnapshotStore 对象存储
type SnapshotStore interface {
	PutObject(ctx context.Context, bucketName, objectKey string, reader io.Reader, size int64, contentType string) error
	GetPresignedDownloadURL(ctx context.Context, bucketName, objectKey string, durationSeconds int) (string, error)
}

type SnapshotInfo struct {
	ObjectKey   string `json:"object_key"`
	DownloadURL string `json:"download_url"`
}

const (
	LeaderboardCacheKey    = "arena:leaderboard:standings"
	LeaderboardVersionKey  = "arena:leaderboard:version"
	SnapshotPrefix         = "leaderboard/"
	defaultLeaderboardTTL  = 30 * time.Second
	defaultPresignDuration = 3600
)

// RankingServiceImpl 排行榜服务, rdb 为 nil 时不使用缓存
type RankingServiceImpl struct {
	repo            repository.ParticipantRepository
	rdb             redis.Cmdable
	feed            ChangeFeed
	store           SnapshotStore
	log             loggerv2.Logger
	exporterFactory *factory.RankingExporterFactory

	cacheTTL        time.Duration
	exportDir       string
	bucket          string
	presignDuration int
	now             func() time.Time
}

var _ RankingService = (*RankingServiceImpl)(nil)

type RankingOption func(*RankingServiceImpl)

func WithRankingCacheTTL(ttl time.Duration) RankingOption {
	return func(s *RankingServiceImpl) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithExportDir(dir string) RankingOption {
	return func(s *RankingServiceImpl) {
		s.exportDir = dir
	}
}

func WithSnapshotStore(store SnapshotStore, bucket string, presignDurationSeconds int) RankingOption {
	return func(s *RankingServiceImpl) {
		s.store = store
		s.bucket = bucket
		if presignDurationSeconds > 0 {
			s.presignDuration = presignDurationSeconds
		}
	}
}

func NewRankingService(repo repository.ParticipantRepository, rdb redis.Cmdable, feed ChangeFeed, log loggerv2.Logger, opts ...RankingOption) RankingService {
	s := &RankingServiceImpl{
		repo:            repo,
		rdb:             rdb,
		feed:            feed,
		log:             log,
		cacheTTL:        defaultLeaderboardTTL,
		exportDir:       ".",
		presignDuration: defaultPresignDuration,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.exporterFactory = factory.NewRankingExporterFactory(s, log)
	return s
}

// cachedStandings 缓存带上写入时读到的版本号, 版本落后的缓存视为未命中
type cachedStandings struct {
	Version   int64              `json:"version"`
	Standings []ranking.Standing `json:"standings"`
}

func (s *RankingServiceImpl) GetStandings(ctx context.Context) ([]ranking.Standing, error) {
	version, cached, ok := s.loadCache(ctx)
	if ok {
		return cached, nil
	}

	participants, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetStandings failed at find all participants: %w", err)
	}
	standings := ranking.Rank(participants)
	s.storeCache(ctx, version, standings)
	return standings, nil
}

// loadCache 返回当前版本号, 版本号必须在读库之前取得
func (s *RankingServiceImpl) loadCache(ctx context.Context) (int64, []ranking.Standing, bool) {
	if s.rdb == nil {
		return 0, nil, false
	}
	vals, err := s.rdb.MGet(ctx, LeaderboardVersionKey, LeaderboardCacheKey).Result()
	if err != nil {
		s.log.WarnContext(ctx, "get leaderboard cache failed", logger.Error(err))
		return 0, nil, false
	}

	var version int64
	if v, ok := vals[0].(string); ok {
		if version, err = strconv.ParseInt(v, 10, 64); err != nil {
			s.log.WarnContext(ctx, "parse leaderboard version failed", logger.Error(err))
			return 0, nil, false
		}
	}
	raw, ok := vals[1].(string)
	if !ok {
		return version, nil, false
	}
	var entry cachedStandings
	if err = json.Unmarshal([]byte(raw), &entry); err != nil {
		s.log.WarnContext(ctx, "unmarshal leaderboard cache failed", logger.Error(err))
		return version, nil, false
	}
	if entry.Version != version {
		return version, nil, false
	}
	return version, entry.Standings, true
}

func (s *RankingServiceImpl) storeCache(ctx context.Context, version int64, standings []ranking.Standing) {
	if s.rdb == nil {
		return
	}
	val, err := json.Marshal(&cachedStandings{Version: version, Standings: standings})
	if err != nil {
		s.log.WarnContext(ctx, "marshal leaderboard cache failed", logger.Error(err))
		return
	}
	if err = s.rdb.Set(ctx, LeaderboardCacheKey, val, s.cacheTTL).Err(); err != nil {
		s.log.WarnContext(ctx, "set leaderboard cache failed", logger.Error(err))
	}
}

// GetLeaderboard 排序与过滤不改变规范排名号, Renumber 时按过滤后的位置重新编号
func (s *RankingServiceImpl) GetLeaderboard(ctx context.Context, param *model.GetLeaderboardParam) (*model.GetLeaderboardResponse, error) {
	standings, err := s.GetStandings(ctx)
	if err != nil {
		return nil, err
	}

	key := ranking.SortKey(param.SortBy)
	desc := ranking.DefaultDesc(key)
	if param.Desc != nil {
		desc = *param.Desc
	}
	view := ranking.Present(standings, ranking.View{
		Key:      key,
		Desc:     desc,
		Query:    param.Query,
		Renumber: param.Renumber,
	})

	page, pageSize := param.Page, param.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	start := min((page-1)*pageSize, len(view))
	end := min(start+pageSize, len(view))

	list := make([]model.LeaderboardEntry, 0, end-start)
	for _, st := range view[start:end] {
		list = append(list, st.Entry())
	}
	return &model.GetLeaderboardResponse{
		List:     list,
		Total:    len(view),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *RankingServiceImpl) RankOf(ctx context.Context, participantID string) (int, error) {
	standings, err := s.GetStandings(ctx)
	if err != nil {
		return 0, err
	}
	return ranking.RankOf(standings, participantID), nil
}

// Invalidate 先递增版本号, 在此之前读库的请求写回的缓存会因版本落后而失效
func (s *RankingServiceImpl) Invalidate(ctx context.Context) error {
	if s.rdb != nil {
		if err := s.rdb.Incr(ctx, LeaderboardVersionKey).Err(); err != nil {
			return fmt.Errorf("Invalidate failed at incr version: %w", err)
		}
		if err := s.rdb.Del(ctx, LeaderboardCacheKey).Err(); err != nil {
			return fmt.Errorf("Invalidate failed at del cache: %w", err)
		}
	}
	if s.feed != nil {
		if err := s.feed.Publish(ctx); err != nil {
			return fmt.Errorf("Invalidate failed at publish: %w", err)
		}
	}
	return nil
}

func (s *RankingServiceImpl) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	if s.feed == nil {
		return nil, fmt.Errorf("leaderboard change feed is not configured")
	}
	return s.feed.Subscribe(ctx)
}

// Export 导出排行榜
func (s *RankingServiceImpl) Export(ctx context.Context, exporterType factory.RankingExporterType, w io.Writer) error {
	exp := s.exporterFactory.GetRankingExporter(exporterType)
	if exp == nil {
		return fmt.Errorf("get ranking exporter failed: exporter %q not found", exporterType)
	}
	return exp.Export(ctx, w)
}

func (s *RankingServiceImpl) snapshotName(exporterType factory.RankingExporterType) string {
	return "leaderboard-" + s.now().Format("20060102-150405") + factory.ExporterSuffixMap[exporterType]
}

func (s *RankingServiceImpl) ExportToFile(ctx context.Context, exporterType factory.RankingExporterType) (string, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir failed: %w", err)
	}
	path := filepath.Join(s.exportDir, s.snapshotName(exporterType))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file failed: %w", err)
	}
	defer file.Close()
	if err = s.Export(ctx, exporterType, file); err != nil {
		return "", err
	}
	return path, nil
}

func (s *RankingServiceImpl) UploadSnapshot(ctx context.Context, exporterType factory.RankingExporterType) (*SnapshotInfo, error) {
	if s.store == nil {
		return nil, fmt.Errorf("snapshot store is not configured")
	}
	var buf bytes.Buffer
	if err := s.Export(ctx, exporterType, &buf); err != nil {
		return nil, fmt.Errorf("UploadSnapshot failed at export: %w", err)
	}

	key := SnapshotPrefix + s.snapshotName(exporterType)
	size := int64(buf.Len())
	if err := s.store.PutObject(ctx, s.bucket, key, &buf, size, factory.ContentTypeMap[exporterType]); err != nil {
		return nil, fmt.Errorf("UploadSnapshot failed at put object: %w", err)
	}
	url, err := s.store.GetPresignedDownloadURL(ctx, s.bucket, key, s.presignDuration)
	if err != nil {
		return nil, fmt.Errorf("UploadSnapshot failed at presign: %w", err)
	}
	s.log.InfoContext(ctx, "leaderboard snapshot uploaded",
		logger.String("bucket", s.bucket),
		logger.String("object_key", key),
		logger.Int64("size", size))
	return &SnapshotInfo{ObjectKey: key, DownloadURL: url}, nil
}
