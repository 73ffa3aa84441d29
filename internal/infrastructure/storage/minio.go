package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// MinIOService 对象存储
// 对象key即文件名，与本地存储保持一致，数据库中只保存文件名
type MinIOService struct {
	client *minio.Client
	bucket string
}

// NewMinIOService 创建MinIO客户端，bucket不存在时自动创建
func NewMinIOService(ctx context.Context, cfg config.MinIOConfig) (*MinIOService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("检查bucket失败: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建bucket失败: %w", err)
		}
	}

	return &MinIOService{client: client, bucket: cfg.Bucket}, nil
}

// SaveFile 上传文件，Content-Type按内容检测
func (s *MinIOService) SaveFile(ctx context.Context, upload *file.Upload, allowedExtensions []string) (string, error) {
	if err := file.CheckExtension(upload, allowedExtensions); err != nil {
		return "", err
	}

	// 封面不超过1MB，整体读入内存
	data, err := io.ReadAll(upload.Content)
	if err != nil {
		return "", apperrors.WithCause(apperrors.ErrCodeStorageError, "读取上传文件失败", err)
	}

	name := uuid.NewString() + upload.Ext()
	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: mimetype.Detect(data).String()})
	if err != nil {
		return "", apperrors.WithCause(apperrors.ErrCodeStorageError, "上传文件失败", err)
	}
	return name, nil
}

// DeleteFile 删除对象，不存在返回file.NotFound
// RemoveObject对不存在的key不报错，所以先Stat
func (s *MinIOService) DeleteFile(ctx context.Context, fileName string) error {
	if !file.ValidName(fileName) {
		return file.NotFound(fileName)
	}

	if _, err := s.client.StatObject(ctx, s.bucket, fileName, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return file.NotFound(fileName)
		}
		return apperrors.WithCause(apperrors.ErrCodeStorageError, "查询文件失败", err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, fileName, minio.RemoveObjectOptions{}); err != nil {
		return apperrors.WithCause(apperrors.ErrCodeStorageError, "删除文件失败", err)
	}
	return nil
}
