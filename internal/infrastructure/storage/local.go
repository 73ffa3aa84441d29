package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// LocalService 本地磁盘存储
// 文件保存在dir目录下，文件名为"{uuid}{扩展名}"，通过router的静态目录对外访问
type LocalService struct {
	fs  afero.Fs
	dir string
}

// NewLocalService 创建本地存储，目录不存在时自动创建
// 生产环境传入afero.NewOsFs()，测试传入afero.NewMemMapFs()
func NewLocalService(fs afero.Fs, dir string) (*LocalService, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrapf(err, "创建存储目录失败: %s", dir)
	}
	return &LocalService{fs: fs, dir: dir}, nil
}

// SaveFile 保存文件，返回生成的文件名
func (s *LocalService) SaveFile(ctx context.Context, upload *file.Upload, allowedExtensions []string) (string, error) {
	if err := file.CheckExtension(upload, allowedExtensions); err != nil {
		return "", err
	}

	name := uuid.NewString() + upload.Ext()
	path := filepath.Join(s.dir, name)

	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", apperrors.WithCause(apperrors.ErrCodeStorageError, "保存文件失败", err)
	}

	_, copyErr := io.Copy(f, upload.Content)
	closeErr := f.Close()
	if err := firstError(copyErr, closeErr, ctx.Err()); err != nil {
		_ = s.fs.Remove(path)
		return "", apperrors.WithCause(apperrors.ErrCodeStorageError, "写入文件失败", err)
	}

	return name, nil
}

// DeleteFile 删除文件，不存在返回file.NotFound
func (s *LocalService) DeleteFile(ctx context.Context, fileName string) error {
	if !file.ValidName(fileName) {
		return file.NotFound(fileName)
	}

	path := filepath.Join(s.dir, fileName)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return apperrors.WithCause(apperrors.ErrCodeStorageError, "检查文件失败", err)
	}
	if !exists {
		return file.NotFound(fileName)
	}

	if err := s.fs.Remove(path); err != nil {
		return apperrors.WithCause(apperrors.ErrCodeStorageError, "删除文件失败", err)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
