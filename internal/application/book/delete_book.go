package book

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/pkg/flash"
	"github.com/xiebiao/bookstore-admin/pkg/tracing"
)

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	books   book.Repository
	images  imageStore
	options Options
}

// NewDeleteBookUseCase 创建用例
func NewDeleteBookUseCase(books book.Repository, files file.Service, options Options) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		books:   books,
		images:  imageStore{files: files},
		options: options,
	}
}

// Execute 删除图书,结果以提示消息返回(调用方重定向到列表页展示)
//
// 注意: 默认配置下成功提示总会写入,即使图书不存在或删除失败,
// 此时错误提示同时存在,前端两条都会显示。
// Options.StrictDeleteFlash为true时失败只返回错误提示。
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) flash.Flash {
	err := uc.delete(ctx, id)
	finish("delete", err, map[string]interface{}{"book_id": id})

	var f flash.Flash
	if err != nil {
		f.Error = FailureMessage(err, MsgDeleteFailed)
	}
	if err == nil || !uc.options.StrictDeleteFlash {
		f.Success = MsgBookDeleted
	}
	return f
}

func (uc *DeleteBookUseCase) delete(ctx context.Context, id uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, "DeleteBook")
	defer func() { tracing.EndSpan(span, err) }()

	b, err := uc.books.FindByID(ctx, id)
	if err != nil {
		return findError(err, id)
	}
	if err = uc.books.Delete(ctx, b); err != nil {
		return findError(err, id)
	}

	// 记录已删除,封面删除失败只记日志
	if b.HasImage() {
		uc.images.discard(ctx, b.Image)
	}
	uc.options.publish(ctx, EventBookDeleted, BookEvent{BookID: b.ID, Name: b.Name, GenreID: b.GenreID, Image: b.Image})
	return nil
}
