// Package minio 排行榜快照所用的对象存储封装
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const (
	EnvMinIOAccessKeyID     = "MINIO_ACCESS_KEY_ID"
	EnvMinIOSecretAccessKey = "MINIO_SECRET_ACCESS_KEY"
)

type MinIOService struct {
	client *minio.Client
	log    loggerv2.Logger
}

// NewMinIOService 凭证来自 MINIO_ACCESS_KEY_ID / MINIO_SECRET_ACCESS_KEY
func NewMinIOService(log loggerv2.Logger, endpoint string, useSSL bool) (*MinIOService, error) {
	accessKey, secretKey := os.Getenv(EnvMinIOAccessKeyID), os.Getenv(EnvMinIOSecretAccessKey)
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("minio credentials missing: set %s and %s", EnvMinIOAccessKeyID, EnvMinIOSecretAccessKey)
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}
	return &MinIOService{client: client, log: log}, nil
}

func (s *MinIOService) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %s: %w", bucket, err)
	}
	s.log.InfoContext(ctx, "bucket created", logger.String("bucket", bucket))
	return nil
}

func (s *MinIOService) PutObject(ctx context.Context, bucket, objectKey string, reader io.Reader, size int64, contentType string) error {
	info, err := s.client.PutObject(ctx, bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, objectKey, err)
	}
	s.log.DebugContext(ctx, "object uploaded",
		logger.String("object_key", objectKey),
		logger.Int64("size", info.Size))
	return nil
}

// GetPresignedDownloadURL 下载时以对象名作为附件文件名
func (s *MinIOService) GetPresignedDownloadURL(ctx context.Context, bucket, objectKey string, durationSeconds int) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(objectKey)))

	u, err := s.client.PresignedGetObject(ctx, bucket, objectKey, time.Duration(durationSeconds)*time.Second, params)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", bucket, objectKey, err)
	}
	return u.String(), nil
}

type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

func (s *MinIOService) ListObjectsWithPrefix(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", bucket, prefix, obj.Err)
		}
		objects = append(objects, ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	return objects, nil
}

// DeleteObjects 逐个收集失败项, 全部处理完后合并返回
func (s *MinIOService) DeleteObjects(ctx context.Context, bucket string, objectKeys []string) error {
	if len(objectKeys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(objectKeys))
	for _, key := range objectKeys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failed []error
	for res := range s.client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if res.Err != nil {
			failed = append(failed, fmt.Errorf("delete %s: %w", res.ObjectName, res.Err))
		}
	}
	s.log.InfoContext(ctx, "objects deleted",
		logger.String("bucket", bucket),
		logger.Int("requested", len(objectKeys)),
		logger.Int("failed", len(failed)))
	return errors.Join(failed...)
}
