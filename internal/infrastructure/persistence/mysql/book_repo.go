package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 外键失败转换为book.ErrGenreMissing,记录不存在转换为book.ErrBookNotFound
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// List 查询全部图书(预加载分类名称),按ID升序
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := r.db.WithContext(ctx).Preload("Genre").Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, 0, len(models))
	for i := range models {
		books = append(books, toBookEntity(&models[i]))
	}
	return books, nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Preload("Genre").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Create 创建图书,回填自增ID
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = 0

	if err := r.db.WithContext(ctx).Omit("Genre").Create(model).Error; err != nil {
		return writeError(err, "创建图书失败")
	}

	b.ID = model.ID
	return nil
}

// Update 按ID更新全部可编辑字段
// 学习要点:
// MySQL的RowsAffected只统计真正发生变化的行,不能用来判断记录是否存在,
// 所以在事务内先查再改
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing BookModel
		if err := tx.Select("id").First(&existing, b.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}

		model := toBookModel(b)
		err := tx.Model(&existing).
			Select("name", "author_name", "image", "genre_id", "price").
			Updates(model).Error
		if err != nil {
			return writeError(err, "更新图书失败")
		}
		return nil
	})
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, b *book.Book) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, b.ID)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func writeError(err error, message string) error {
	if isForeignKeyError(err) {
		return book.ErrGenreMissing
	}
	return apperrors.Wrap(err, message)
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:         m.ID,
		Name:       m.Name,
		AuthorName: m.AuthorName,
		Image:      m.Image,
		GenreID:    m.GenreID,
		Price:      m.Price,
		GenreName:  m.Genre.Name,
	}
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:         b.ID,
		Name:       b.Name,
		AuthorName: b.AuthorName,
		Image:      b.Image,
		GenreID:    b.GenreID,
		Price:      b.Price,
	}
}
