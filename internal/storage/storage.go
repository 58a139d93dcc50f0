package storage

import (
	"context"
	"fmt"

	"twitter-backend/config"
)

// FileStorage 是媒体存储服务的统一接口
// UploadFile 返回可公开访问的URL，DeleteFile 按对象路径删除
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, path, contentType string) (string, error)
	DeleteFile(ctx context.Context, path string) error
}

// New 根据配置选择存储后端
func New(cfg config.Config) (FileStorage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSClient(cfg.GCSBucketName, cfg.GCSCredentialsFile)
	case "local":
		return NewLocalStorage(cfg.LocalStoragePath, cfg.BackendURL)
	default:
		return nil, fmt.Errorf("未知的存储后端: %s", cfg.StorageBackend)
	}
}
