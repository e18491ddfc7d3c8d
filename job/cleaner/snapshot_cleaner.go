package cleaner

import (
	"context"
	"strings"
	"time"

	"github.com/to404hanga/online_judge_arena/pkg/minio"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// ObjectStore 清理所需的对象存储操作
type ObjectStore interface {
	ListObjectsWithPrefix(ctx context.Context, bucketName, prefix string) ([]minio.ObjectInfo, error)
	DeleteObjects(ctx context.Context, bucketName string, objectKeys []string) error
}

// SnapshotCleaner 清理 minio 中过期的排行榜快照
type SnapshotCleaner struct {
	store         ObjectStore
	log           loggerv2.Logger
	bucket        string
	prefix        string
	retentionDays int
	now           func() time.Time
}

func NewSnapshotCleaner(store ObjectStore, log loggerv2.Logger, bucket, prefix string, retentionDays int) *SnapshotCleaner {
	return &SnapshotCleaner{
		store:         store,
		log:           log,
		bucket:        bucket,
		prefix:        prefix,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

type CleanupStats struct {
	TotalFiles      int           `json:"total_files"`
	DeletedFiles    int           `json:"deleted_files"`
	DeletedSize     int64         `json:"deleted_size"`
	ProcessDuration time.Duration `json:"process_duration"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
}

func (c *SnapshotCleaner) RunCleanup(ctx context.Context) error {
	c.log.InfoContext(ctx, "Starting leaderboard snapshot cleanup job")

	stats, err := c.cleanupExpired(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "cleanupExpired failed", logger.Error(err))
		return err
	}

	c.log.InfoContext(ctx, "Leaderboard snapshot cleanup job completed", logger.Any("stats", stats))
	return nil
}

func (c *SnapshotCleaner) cleanupExpired(ctx context.Context) (*CleanupStats, error) {
	stats := &CleanupStats{StartTime: c.now()}
	defer func() {
		stats.EndTime = c.now()
		stats.ProcessDuration = stats.EndTime.Sub(stats.StartTime)
	}()

	infos, err := c.store.ListObjectsWithPrefix(ctx, c.bucket, c.prefix)
	if err != nil {
		return stats, err
	}
	stats.TotalFiles = len(infos)

	cutoffTime := c.now().AddDate(0, 0, -c.retentionDays)
	var expired []string
	for _, obj := range infos {
		if isTempFile(obj.Key) || isSystemFile(obj.Key) {
			continue
		}
		if obj.LastModified.After(cutoffTime) {
			continue
		}
		expired = append(expired, obj.Key)
		stats.DeletedSize += obj.Size
	}

	if err = c.store.DeleteObjects(ctx, c.bucket, expired); err != nil {
		return stats, err
	}
	stats.DeletedFiles = len(expired)
	return stats, nil
}

// isTempFile 判断文件是否为临时文件
func isTempFile(objectKey string) bool {
	lowerKey := strings.ToLower(objectKey)
	return strings.Contains(lowerKey, "temp/") ||
		strings.Contains(lowerKey, "tmp/") ||
		strings.HasSuffix(lowerKey, ".tmp") ||
		strings.HasSuffix(lowerKey, ".temp")
}

// isSystemFile 判断文件是否为系统文件
func isSystemFile(objectKey string) bool {
	lowerKey := strings.ToLower(objectKey)
	return strings.HasPrefix(lowerKey, "system/") ||
		strings.HasPrefix(lowerKey, ".") ||
		strings.Contains(lowerKey, "/.")
}
