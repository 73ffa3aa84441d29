package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// flakyService 按预设错误返回的文件服务
type flakyService struct {
	err   error
	calls int
}

func (f *flakyService) SaveFile(ctx context.Context, upload *file.Upload, allowed []string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "stored.png", nil
}

func (f *flakyService) DeleteFile(ctx context.Context, fileName string) error {
	f.calls++
	return f.err
}

func TestWithBreaker(t *testing.T) {
	ctx := context.Background()
	cfg := circuitbreaker.Config{
		Timeout:     time.Minute,
		ReadyToTrip: func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 2 },
	}

	t.Run("正常透传", func(t *testing.T) {
		svc := WithBreaker("test", &flakyService{}, cfg)
		name, err := svc.SaveFile(ctx, &file.Upload{Filename: "a.png"}, []string{".png"})
		require.NoError(t, err)
		assert.Equal(t, "stored.png", name)
	})

	t.Run("存储故障熔断", func(t *testing.T) {
		inner := &flakyService{err: apperrors.WithCause(apperrors.ErrCodeStorageError, "上传文件失败", errors.New("connection refused"))}
		svc := WithBreaker("test", inner, cfg)

		_ = svc.DeleteFile(ctx, "a.png")
		_ = svc.DeleteFile(ctx, "b.png")
		err := svc.DeleteFile(ctx, "c.png")

		assert.Equal(t, 2, inner.calls, "熔断后不再调用存储")
		assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
		assert.Equal(t, apperrors.ErrCodeStorageError, apperrors.CodeOf(err))
	})

	t.Run("业务错误不计入失败", func(t *testing.T) {
		inner := &flakyService{err: file.NotFound("a.png")}
		svc := WithBreaker("test", inner, cfg)

		for i := 0; i < 5; i++ {
			assert.ErrorIs(t, svc.DeleteFile(ctx, "a.png"), file.ErrFileNotFound)
		}
		assert.Equal(t, 5, inner.calls)
	})
}
