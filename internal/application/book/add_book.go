package book

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/internal/domain/genre"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/saga"
	"github.com/xiebiao/bookstore-admin/pkg/tracing"
)

// AddBookUseCase 新增图书用例
type AddBookUseCase struct {
	books   book.Repository
	genres  genre.Repository
	images  imageStore
	options Options
}

// NewAddBookUseCase 创建用例
func NewAddBookUseCase(books book.Repository, genres genre.Repository, files file.Service, options Options) *AddBookUseCase {
	return &AddBookUseCase{
		books:   books,
		genres:  genres,
		images:  imageStore{files: files},
		options: options,
	}
}

// Prepare 空表单(分类下拉框不选中任何项)
func (uc *AddBookUseCase) Prepare(ctx context.Context) (*BookDTO, error) {
	list, err := genreSelectList(ctx, uc.genres, 0)
	if err != nil {
		return nil, err
	}
	return &BookDTO{GenreList: list}, nil
}

// Execute 新增图书
// 流程:
// 1. 重建分类下拉框(选中提交的分类),失败时dto可直接回显
// 2. 字段校验
// 3. Saga: 保存封面图片 → 写入图书;写库失败时删除刚保存的图片
//
// 成功后dto.ID为新图书ID,dto.Image为生成的文件名
func (uc *AddBookUseCase) Execute(ctx context.Context, dto *BookDTO) (err error) {
	ctx, span := tracing.StartSpan(ctx, "AddBook")
	defer func() {
		tracing.EndSpan(span, err)
		finish("add", err, map[string]interface{}{"book_id": dto.ID, "image": dto.Image})
	}()

	if dto.GenreList, err = genreSelectList(ctx, uc.genres, dto.GenreID); err != nil {
		return err
	}

	// 新增时忽略提交的id和封面文件名: id由数据库自增,封面只能来自本次上传
	dto.ID, dto.Image = 0, ""
	if err = ToBook(dto).Validate(); err != nil {
		return err
	}

	s := saga.NewSaga(uc.options.Timeout)
	if dto.ImageFile != nil {
		var stored string
		s.AddStep("保存封面图片",
			func(ctx context.Context) error {
				name, err := uc.images.save(ctx, dto.ImageFile)
				if err != nil {
					return err
				}
				stored, dto.Image = name, name
				return nil
			},
			func(ctx context.Context) error {
				uc.images.discard(ctx, stored)
				dto.Image = ""
				return nil
			},
		)
	}
	s.AddStep("保存图书", func(ctx context.Context) error {
		b := ToBook(dto)
		if err := uc.books.Create(ctx, b); err != nil {
			return persistError(err)
		}
		dto.ID = b.ID
		return nil
	}, nil)

	if err = s.Execute(ctx); err != nil {
		return err
	}
	uc.options.publish(ctx, EventBookCreated, eventFrom(dto))
	return nil
}

// persistError 仓储错误归类: 领域错误原样返回,其他包装为内部错误
func persistError(err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Wrap(err, "写入图书失败")
}

// Redisplay 提交数据无法绑定时补全分类下拉框（选中提交的分类），用于重新渲染表单
func (uc *AddBookUseCase) Redisplay(ctx context.Context, dto *BookDTO) error {
	list, err := genreSelectList(ctx, uc.genres, dto.GenreID)
	if err != nil {
		return err
	}
	dto.GenreList = list
	return nil
}
