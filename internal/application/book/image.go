package book

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
	"github.com/xiebiao/bookstore-admin/pkg/tracing"
)

// MaxImageSize 封面图片最大字节数(1MB)
const MaxImageSize = 1 * 1024 * 1024

// AllowedImageExtensions 允许的封面图片扩展名
var AllowedImageExtensions = []string{".jpeg", ".jpg", ".png"}

// ErrImageTooLarge 封面图片超过1MB
var ErrImageTooLarge = apperrors.New(apperrors.ErrCodeFileTooLarge, "Файл изображения не может превышать 1Mb")

// imageStore 封面图片的保存与删除
type imageStore struct {
	files file.Service
}

// save 校验大小后保存,返回生成的文件名
func (s imageStore) save(ctx context.Context, upload *file.Upload) (name string, err error) {
	ctx, span := tracing.StartSpan(ctx, "SaveImage")
	defer func() { tracing.EndSpan(span, err) }()

	if upload.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	metrics.ObserveHistogram(metrics.ImageUploadBytes, float64(upload.Size))

	name, err = s.files.SaveFile(ctx, upload, AllowedImageExtensions)
	if err != nil {
		if apperrors.IsAppError(err) {
			return "", err
		}
		return "", apperrors.Wrap(err, "保存封面图片失败")
	}
	return name, nil
}

// discard 删除图片(尽力而为,失败只记日志)
func (s imageStore) discard(ctx context.Context, name string) {
	err := s.files.DeleteFile(ctx, name)
	metrics.RecordImageDeletion(err)
	if err != nil {
		logger.Warn("删除封面图片失败", err, map[string]interface{}{"image": name})
	}
}
