package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-admin/internal/domain/genre"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
)

const genreListKey = "genres:all"

// cachedGenreRepository 分类列表读缓存（Cache-Aside）
// 分类只读且很少变化，每次打开表单都要查询，适合整体缓存
// Redis故障时降级为直接查库，只记录日志
type cachedGenreRepository struct {
	next   genre.Repository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedGenreRepository 包装分类仓储，ttl<=0时不缓存
func NewCachedGenreRepository(next genre.Repository, client *redis.Client, ttl time.Duration) genre.Repository {
	if ttl <= 0 || client == nil {
		return next
	}
	return &cachedGenreRepository{next: next, client: client, ttl: ttl}
}

func (r *cachedGenreRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	data, err := r.client.Get(ctx, genreListKey).Bytes()
	switch {
	case err == nil:
		var genres []*genre.Genre
		if jsonErr := json.Unmarshal(data, &genres); jsonErr == nil {
			return genres, nil
		}
		logger.Warn("分类缓存数据损坏", nil, nil)
	case !errors.Is(err, redis.Nil):
		logger.Warn("读取分类缓存失败", err, nil)
	}

	genres, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(genres); err == nil {
		if err := r.client.Set(ctx, genreListKey, data, r.ttl).Err(); err != nil {
			logger.Warn("写入分类缓存失败", err, nil)
		}
	}
	return genres, nil
}
