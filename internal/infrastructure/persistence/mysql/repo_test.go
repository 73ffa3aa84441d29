package mysql

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// newTestDB 基于SQLite文件库的测试连接(开启外键约束)
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "bookstore.db") + "?_pragma=foreign_keys(1)"
	db, err := Open(sqlite.Open(dsn), false)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, SeedGenres(db, DefaultGenres))
	return db
}

func TestSeedGenres(t *testing.T) {
	db := newTestDB(t)

	// 重复执行不会重复写入
	require.NoError(t, SeedGenres(db, []string{"Другое"}))

	genres, err := NewGenreRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, len(DefaultGenres))
	assert.Equal(t, DefaultGenres[0], genres[0].Name)
	assert.Equal(t, uint(1), genres[0].ID)
}

func TestBookRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBookRepository(db)

	b := &book.Book{
		Name:       "Мастер и Маргарита",
		AuthorName: "Михаил Булгаков",
		Image:      "cover.png",
		GenreID:    1,
		Price:      decimal.RequireFromString("450.50"),
	}

	t.Run("创建并回填ID", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, b))
		assert.NotZero(t, b.ID)
	})

	t.Run("查询包含分类名称", func(t *testing.T) {
		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Мастер и Маргарита", found.Name)
		assert.Equal(t, DefaultGenres[0], found.GenreName)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("450.5")))

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, DefaultGenres[0], list[0].GenreName)
	})

	t.Run("更新", func(t *testing.T) {
		changed := *b
		changed.Name = "Белая гвардия"
		changed.GenreID = 2
		changed.Image = ""
		require.NoError(t, repo.Update(ctx, &changed))

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Белая гвардия", found.Name)
		assert.Equal(t, uint(2), found.GenreID)
		assert.Empty(t, found.Image)
	})

	t.Run("相同内容更新不报不存在", func(t *testing.T) {
		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.NoError(t, repo.Update(ctx, found))
	})

	t.Run("更新不存在的图书", func(t *testing.T) {
		missing := *b
		missing.ID = 999
		err := repo.Update(ctx, &missing)
		assert.True(t, errors.Is(err, book.ErrBookNotFound))
	})

	t.Run("分类不存在", func(t *testing.T) {
		orphan := *b
		orphan.ID = 0
		orphan.GenreID = 999
		err := repo.Create(ctx, &orphan)
		assert.True(t, errors.Is(err, book.ErrGenreMissing))
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, b))

		_, err := repo.FindByID(ctx, b.ID)
		assert.True(t, errors.Is(err, book.ErrBookNotFound))
		assert.True(t, errors.Is(repo.Delete(ctx, b), book.ErrBookNotFound))
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u := user.NewUser("admin@example.com", "hash", "Админ", user.RoleAdmin)
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	found, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, found.IsAdmin())

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	dup := user.NewUser("admin@example.com", "hash", "Другой", user.RoleUser)
	assert.True(t, errors.Is(repo.Create(ctx, dup), apperrors.ErrEmailDuplicate))

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
}
