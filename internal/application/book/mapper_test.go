package book

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
)

func TestToBook(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  string
	}{
		{"整数价格", 450, "450.00"},
		{"一位小数", 320.5, "320.50"},
		{"第三位小数进位", 320.555, "320.56"},
		{"第三位小数舍去", 19.994, "19.99"},
		{"零价格", 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := &BookDTO{
				ID:         7,
				Name:       "Евгений Онегин",
				AuthorName: "Александр Пушкин",
				Image:      "cover.png",
				GenreID:    2,
				Price:      tt.price,
			}

			b := ToBook(dto)
			assert.Equal(t, uint(7), b.ID)
			assert.Equal(t, "Евгений Онегин", b.Name)
			assert.Equal(t, "Александр Пушкин", b.AuthorName)
			assert.Equal(t, "cover.png", b.Image)
			assert.Equal(t, uint(2), b.GenreID)
			assert.Equal(t, tt.want, b.Price.StringFixed(2))
			assert.Empty(t, b.GenreName)
		})
	}
}

func TestFromBook(t *testing.T) {
	b := sampleBook(3, "a.png")
	b.Price = decimal.RequireFromString("320.56")

	dto := FromBook(&b)
	assert.Equal(t, uint(3), dto.ID)
	assert.Equal(t, "Мастер и Маргарита", dto.Name)
	assert.Equal(t, "Михаил Булгаков", dto.AuthorName)
	assert.Equal(t, "a.png", dto.Image)
	assert.Equal(t, uint(1), dto.GenreID)
	assert.Equal(t, 320.56, dto.Price)
	assert.Nil(t, dto.ImageFile)
	assert.Nil(t, dto.GenreList)

	t.Run("往返不丢字段", func(t *testing.T) {
		back := ToBook(dto)
		assert.Equal(t, book.Book{
			ID:         b.ID,
			Name:       b.Name,
			AuthorName: b.AuthorName,
			Image:      b.Image,
			GenreID:    b.GenreID,
		}, book.Book{
			ID:         back.ID,
			Name:       back.Name,
			AuthorName: back.AuthorName,
			Image:      back.Image,
			GenreID:    back.GenreID,
		})
		assert.True(t, b.Price.Equal(back.Price))
	})
}

func TestToListItem(t *testing.T) {
	b := sampleBook(1, "a.png")

	item := toListItem(&b, "/images")
	assert.Equal(t, "Роман", item.GenreName)
	assert.Equal(t, "450.00", item.Price)
	assert.Equal(t, "/images/a.png", item.ImageURL)

	t.Run("未配置图片地址", func(t *testing.T) {
		assert.Empty(t, toListItem(&b, "").ImageURL)
	})

	t.Run("无封面", func(t *testing.T) {
		noImage := sampleBook(2, "")
		assert.Empty(t, toListItem(&noImage, "/images").ImageURL)
	})
}

func TestGenreSelectList(t *testing.T) {
	ctx := context.Background()

	t.Run("选中指定分类", func(t *testing.T) {
		items, err := genreSelectList(ctx, testGenres(), 2)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, SelectItem{Text: "Поэзия", Value: "2", Selected: true}, items[1])
		assert.Equal(t, []string{"2"}, selected(items))
	})

	t.Run("id为0时不选中任何项", func(t *testing.T) {
		items, err := genreSelectList(ctx, testGenres(), 0)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Empty(t, selected(items))
	})

	t.Run("分类不存在时不选中任何项", func(t *testing.T) {
		items, err := genreSelectList(ctx, testGenres(), 42)
		require.NoError(t, err)
		assert.Empty(t, selected(items))
	})

	t.Run("空分类表", func(t *testing.T) {
		items, err := genreSelectList(ctx, memGenres{}, 1)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("仓储错误", func(t *testing.T) {
		_, err := genreSelectList(ctx, memGenres{err: errDBDown}, 1)
		assert.Equal(t, KindInternal, KindOf(err))
	})
}
