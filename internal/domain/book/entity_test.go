package book

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

func TestBook_Validate(t *testing.T) {
	valid := func() *Book {
		return &Book{Name: "Мастер и Маргарита", AuthorName: "Михаил Булгаков", GenreID: 1, Price: decimal.RequireFromString("450.00")}
	}

	t.Run("合法图书", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	cases := []struct {
		name    string
		mutate  func(b *Book)
		message string
	}{
		{"书名为空", func(b *Book) { b.Name = "" }, "Введите название книги"},
		{"作者为空", func(b *Book) { b.AuthorName = "" }, "Введите имя автора"},
		{"未选择分类", func(b *Book) { b.GenreID = 0 }, "Выберите жанр"},
		{"价格为负", func(b *Book) { b.Price = decimal.NewFromInt(-1) }, "Цена не может быть отрицательной"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := valid()
			tc.mutate(b)

			err := b.Validate()
			assert.True(t, errors.Is(err, ErrInvalidBook))
			assert.Equal(t, tc.message, apperrors.GetAppError(err).Message)
			assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))
		})
	}

	t.Run("零价格合法", func(t *testing.T) {
		b := valid()
		b.Price = decimal.Zero
		assert.NoError(t, b.Validate())
	})
}

func TestNotFound(t *testing.T) {
	err := NotFound(42)

	assert.True(t, errors.Is(err, ErrBookNotFound))
	assert.Equal(t, "Книга с таким id: 42 не найдена", apperrors.GetAppError(err).Message)
}

func TestBook_HasImage(t *testing.T) {
	assert.False(t, (&Book{Image: "  "}).HasImage())
	assert.True(t, (&Book{Image: "a.png"}).HasImage())
}
