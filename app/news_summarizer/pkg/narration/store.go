package narration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
)

// FileStore 写入本地文件，每次覆盖
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore 创建文件存储
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save 实现 Store，返回文件路径
func (s *FileStore) Save(_ context.Context, data []byte) (string, error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create audio dir failed: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return "", fmt.Errorf("write audio failed: %w", err)
	}
	return s.path, nil
}

// MinIOStore 上传到对象存储，对象名带时间戳避免覆盖
type MinIOStore struct {
	client *minio.Client
	bucket string
	name   string
}

var _ Store = (*MinIOStore)(nil)

// NewMinIOStore 创建对象存储客户端，桶不存在时自动创建
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig, name string) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio 初始化失败: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s failed: %w", cfg.Bucket, err)
	}
	if !exists {
		logger.Log.Infof("存储桶不存在，正在创建: %s", cfg.Bucket)
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s failed: %w", cfg.Bucket, err)
		}
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket, name: filepath.Base(name)}, nil
}

// Save 实现 Store，返回对象地址
func (s *MinIOStore) Save(ctx context.Context, data []byte) (string, error) {
	objectName := fmt.Sprintf("%s-%s", time.Now().UTC().Format("2006-01-02T15-04-05"), s.name)
	_, err := s.client.PutObject(ctx,
		s.bucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "audio/mpeg"},
	)
	if err != nil {
		return "", fmt.Errorf("upload audio failed: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, objectName), nil
}
