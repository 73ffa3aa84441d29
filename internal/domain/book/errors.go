package book

import (
	"fmt"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Книга не найдена")

	// ErrInvalidBook 图书字段校验失败
	ErrInvalidBook = apperrors.New(apperrors.ErrCodeInvalidParams, "Некорректные данные книги")

	// ErrGenreMissing 引用的分类不存在(外键约束失败)
	ErrGenreMissing = apperrors.New(apperrors.ErrCodeGenreNotFound, "Выбранный жанр не существует")
)

// NotFound 指定id的图书不存在
// errors.Is(err, ErrBookNotFound) 对返回值成立
func NotFound(id uint) error {
	return apperrors.WithCause(
		apperrors.ErrCodeBookNotFound,
		fmt.Sprintf("Книга с таким id: %d не найдена", id),
		ErrBookNotFound,
	)
}
