package book

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/tracing"
)

// ListBooksUseCase 图书列表用例
type ListBooksUseCase struct {
	books   book.Repository
	options Options
}

// NewListBooksUseCase 创建用例
func NewListBooksUseCase(books book.Repository, options Options) *ListBooksUseCase {
	return &ListBooksUseCase{books: books, options: options}
}

// Execute 查询全部图书(含分类名称),顺序与仓储返回一致
func (uc *ListBooksUseCase) Execute(ctx context.Context) (items []BookListItem, err error) {
	ctx, span := tracing.StartSpan(ctx, "ListBooks")
	defer func() { tracing.EndSpan(span, err) }()

	list, err := uc.books.List(ctx)
	if err != nil {
		if !apperrors.IsAppError(err) {
			err = apperrors.Wrap(err, "查询图书列表失败")
		}
		finish("list", err, nil)
		return nil, err
	}

	base := uc.options.imageBaseURL()
	items = make([]BookListItem, 0, len(list))
	for _, b := range list {
		items = append(items, toListItem(b, base))
	}
	return items, nil
}
