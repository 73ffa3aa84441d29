package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/genre"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(db *gorm.DB) genre.Repository {
	return &genreRepository{db: db}
}

// List 全部分类,按ID升序
func (r *genreRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	var models []GenreModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	genres := make([]*genre.Genre, 0, len(models))
	for _, m := range models {
		genres = append(genres, &genre.Genre{ID: m.ID, Name: m.Name})
	}
	return genres, nil
}
