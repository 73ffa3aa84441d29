package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/flash"
)

// FlashStore 重定向提示存储
// 设计说明：
// 1. POST处理完成后写入提示，重定向到列表页时读取并删除（只显示一次）
// 2. 每个用户一个Hash：flash:{owner}，两个槽位各占一个field，HSET只覆盖本次非空的槽位
// 3. 设置TTL，用户没有打开列表页时提示自动过期
type FlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

const (
	flashFieldSuccess = "success_message"
	flashFieldError   = "error_message"
)

// NewFlashStore 创建提示存储
func NewFlashStore(client *redis.Client, ttl time.Duration) *FlashStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FlashStore{client: client, ttl: ttl}
}

// Put 写入提示（空提示忽略）
func (s *FlashStore) Put(ctx context.Context, owner string, f flash.Flash) error {
	if f.IsEmpty() {
		return nil
	}

	fields := make(map[string]interface{}, 2)
	if f.Success != "" {
		fields[flashFieldSuccess] = f.Success
	}
	if f.Error != "" {
		fields[flashFieldError] = f.Error
	}

	key := flashKey(owner)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "保存提示失败")
	}
	return nil
}

// Pop 读取并删除提示，没有提示返回空Flash
func (s *FlashStore) Pop(ctx context.Context, owner string) (flash.Flash, error) {
	key := flashKey(owner)

	pipe := s.client.TxPipeline()
	get := pipe.HGetAll(ctx, key)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return flash.Flash{}, apperrors.Wrap(err, "读取提示失败")
	}

	values := get.Val()
	return flash.Flash{
		Success: values[flashFieldSuccess],
		Error:   values[flashFieldError],
	}, nil
}

func flashKey(owner string) string {
	return "flash:" + owner
}
