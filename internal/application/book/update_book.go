package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/internal/domain/genre"
	"github.com/xiebiao/bookstore-admin/pkg/saga"
	"github.com/xiebiao/bookstore-admin/pkg/tracing"
)

// UpdateBookUseCase 修改图书用例
type UpdateBookUseCase struct {
	books   book.Repository
	genres  genre.Repository
	images  imageStore
	options Options
}

// NewUpdateBookUseCase 创建用例
func NewUpdateBookUseCase(books book.Repository, genres genre.Repository, files file.Service, options Options) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		books:   books,
		genres:  genres,
		images:  imageStore{files: files},
		options: options,
	}
}

// Prepare 加载图书并选中其当前分类
// 图书不存在返回book.NotFound(id)
func (uc *UpdateBookUseCase) Prepare(ctx context.Context, id uint) (*BookDTO, error) {
	b, err := uc.books.FindByID(ctx, id)
	if err != nil {
		return nil, findError(err, id)
	}

	dto := FromBook(b)
	if dto.GenreList, err = genreSelectList(ctx, uc.genres, b.GenreID); err != nil {
		return nil, err
	}
	return dto, nil
}

// Execute 修改图书
// 图书不存在返回book.NotFound(id)，此时不会保存任何图片。
// 上传了新封面时: 先保存新图片再写库,写库成功后删除旧图片(尽力而为);
// 写库失败时删除新图片,dto.Image恢复为旧文件名
func (uc *UpdateBookUseCase) Execute(ctx context.Context, dto *BookDTO) (err error) {
	ctx, span := tracing.StartSpan(ctx, "UpdateBook")
	defer func() {
		tracing.EndSpan(span, err)
		finish("update", err, map[string]interface{}{"book_id": dto.ID, "image": dto.Image})
	}()

	if dto.GenreList, err = genreSelectList(ctx, uc.genres, dto.GenreID); err != nil {
		return err
	}
	if err = ToBook(dto).Validate(); err != nil {
		return err
	}

	// 当前封面以数据库为准，不信任表单回传的文件名
	existing, err := uc.books.FindByID(ctx, dto.ID)
	if err != nil {
		return findError(err, dto.ID)
	}
	dto.Image = existing.Image

	var replaced string // 被替换的旧封面
	s := saga.NewSaga(uc.options.Timeout)
	if dto.ImageFile != nil {
		var stored string
		s.AddStep("保存封面图片",
			func(ctx context.Context) error {
				name, err := uc.images.save(ctx, dto.ImageFile)
				if err != nil {
					return err
				}
				stored, replaced, dto.Image = name, dto.Image, name
				return nil
			},
			func(ctx context.Context) error {
				uc.images.discard(ctx, stored)
				dto.Image, replaced = replaced, ""
				return nil
			},
		)
	}
	s.AddStep("保存图书", func(ctx context.Context) error {
		if err := uc.books.Update(ctx, ToBook(dto)); err != nil {
			return findError(err, dto.ID)
		}
		return nil
	}, nil)

	if err = s.Execute(ctx); err != nil {
		return err
	}

	if (&book.Book{Image: replaced}).HasImage() {
		uc.images.discard(ctx, replaced)
	}
	uc.options.publish(ctx, EventBookUpdated, eventFrom(dto))
	return nil
}

// findError 不存在时生成带id的提示
func findError(err error, id uint) error {
	if errors.Is(err, book.ErrBookNotFound) {
		return book.NotFound(id)
	}
	return persistError(err)
}

// Redisplay 提交数据无法绑定时补全分类下拉框（选中提交的分类），用于重新渲染表单
func (uc *UpdateBookUseCase) Redisplay(ctx context.Context, dto *BookDTO) error {
	list, err := genreSelectList(ctx, uc.genres, dto.GenreID)
	if err != nil {
		return err
	}
	dto.GenreList = list
	return nil
}
