// Package storage 封面图片存储实现（本地磁盘 / MinIO）
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/pkg/circuitbreaker"
)

// NewFileService 根据storage.driver创建文件服务
func NewFileService(ctx context.Context, cfg *config.Config) (file.Service, error) {
	switch cfg.Storage.Driver {
	case config.StorageLocal:
		return NewLocalService(afero.NewOsFs(), cfg.Storage.LocalDir)
	case config.StorageMinIO:
		svc, err := NewMinIOService(ctx, cfg.Storage.MinIO)
		if err != nil {
			return nil, err
		}
		// 连续失败5次后熔断30秒
		return WithBreaker("minio", svc, circuitbreaker.Config{
			Interval: time.Minute,
			Timeout:  30 * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %q", cfg.Storage.Driver)
	}
}
