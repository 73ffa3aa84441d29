package book

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/genre"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// ToBook BookDTO → Book
// 字段表: id, name, author, image, genre id, price(新增字段时两个方向都要补上)
func ToBook(dto *BookDTO) *book.Book {
	return &book.Book{
		ID:         dto.ID,
		Name:       dto.Name,
		AuthorName: dto.AuthorName,
		Image:      dto.Image,
		GenreID:    dto.GenreID,
		Price:      decimal.NewFromFloat(dto.Price).Round(2),
	}
}

// FromBook Book → BookDTO(不含分类下拉框)
func FromBook(b *book.Book) *BookDTO {
	return &BookDTO{
		ID:         b.ID,
		Name:       b.Name,
		AuthorName: b.AuthorName,
		Image:      b.Image,
		GenreID:    b.GenreID,
		Price:      b.Price.InexactFloat64(),
	}
}

// toListItem Book → 列表项
func toListItem(b *book.Book, imageBaseURL string) BookListItem {
	item := BookListItem{
		ID:         b.ID,
		Name:       b.Name,
		AuthorName: b.AuthorName,
		Image:      b.Image,
		GenreID:    b.GenreID,
		GenreName:  b.GenreName,
		Price:      b.Price.StringFixed(2),
	}
	if b.HasImage() && imageBaseURL != "" {
		item.ImageURL = imageBaseURL + "/" + b.Image
	}
	return item
}

// genreSelectList 构建分类下拉框,selectedID对应的选项标记为选中(0表示不选中任何项)
func genreSelectList(ctx context.Context, genres genre.Repository, selectedID uint) ([]SelectItem, error) {
	list, err := genres.List(ctx)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	items := make([]SelectItem, 0, len(list))
	for _, g := range list {
		items = append(items, SelectItem{
			Text:     g.Name,
			Value:    strconv.FormatUint(uint64(g.ID), 10),
			Selected: selectedID != 0 && g.ID == selectedID,
		})
	}
	return items, nil
}
