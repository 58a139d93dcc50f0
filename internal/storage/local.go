package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"twitter-backend/internal/util"

	"go.uber.org/zap"
)

// LocalStorage 把文件写入本地磁盘，开发环境的默认后端
// 文件通过 gin 的 /uploads 静态路由对外提供
type LocalStorage struct {
	basePath   string
	backendURL string
}

func NewLocalStorage(basePath, backendURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalStorage{basePath: basePath, backendURL: backendURL}, nil
}

func (s *LocalStorage) UploadFile(ctx context.Context, data []byte, path, contentType string) (string, error) {
	fullPath := filepath.Join(s.basePath, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("创建目录失败: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("保存文件失败: %w", err)
	}

	util.Logger.Info("文件上传成功", zap.String("fullPath", fullPath))
	return fmt.Sprintf("%s/uploads/%s", s.backendURL, path), nil
}

func (s *LocalStorage) DeleteFile(ctx context.Context, path string) error {
	fullPath := filepath.Join(s.basePath, path)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}
