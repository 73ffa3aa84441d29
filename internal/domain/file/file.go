package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// Upload 一次上传的文件
// Content由调用方负责关闭(HTTP层打开multipart文件后传入)
type Upload struct {
	Filename string    // 客户端原始文件名(只用于取扩展名)
	Size     int64     // 字节数
	Content  io.Reader // 文件内容
}

// Ext 小写扩展名(含点),如 ".png"
func (u *Upload) Ext() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}

// Service 文件存储服务
// 设计说明:
// 1. SaveFile校验扩展名后保存文件,返回存储层生成的文件名(调用方不能指定)
// 2. DeleteFile按文件名删除,调用方把失败视为"尽力而为"
// 3. 本地磁盘、MinIO两种实现见infrastructure/storage
type Service interface {
	// SaveFile 保存文件,扩展名不在allowedExtensions中返回ErrExtensionNotAllowed
	SaveFile(ctx context.Context, upload *Upload, allowedExtensions []string) (string, error)

	// DeleteFile 删除文件,文件不存在返回ErrFileNotFound
	DeleteFile(ctx context.Context, fileName string) error
}

// ErrFileNotFound 文件不存在
var ErrFileNotFound = apperrors.New(apperrors.ErrCodeFileNotFound, "Файл не найден")

// ErrExtensionNotAllowed 扩展名不允许(具体提示见ExtensionNotAllowed)
var ErrExtensionNotAllowed = apperrors.New(apperrors.ErrCodeExtensionNotAllowed, "Недопустимый формат файла")

// ExtensionNotAllowed 生成带允许列表的提示
func ExtensionNotAllowed(allowed []string) error {
	return apperrors.WithCause(
		apperrors.ErrCodeExtensionNotAllowed,
		fmt.Sprintf("Разрешены только файлы %s", strings.Join(allowed, ", ")),
		ErrExtensionNotAllowed,
	)
}

// CheckExtension 校验扩展名(不区分大小写)
func CheckExtension(upload *Upload, allowed []string) error {
	ext := upload.Ext()
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return nil
		}
	}
	return ExtensionNotAllowed(allowed)
}

// NotFound 指定文件不存在
func NotFound(fileName string) error {
	return apperrors.WithCause(
		apperrors.ErrCodeFileNotFound,
		fmt.Sprintf("Файл %s не найден", fileName),
		ErrFileNotFound,
	)
}

// ValidName 拒绝包含路径分隔符的文件名(防止删除存储目录以外的文件)
func ValidName(fileName string) bool {
	if fileName == "" || fileName == "." || fileName == ".." {
		return false
	}
	return !strings.ContainsAny(fileName, `/\`)
}
