package storage

import (
	"context"
	"errors"

	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// guardedService 用熔断器包装远程存储
// 只有存储故障（5xxxx错误码）计入失败，格式不允许、文件不存在等业务结果不触发熔断
type guardedService struct {
	next    file.Service
	breaker *circuitbreaker.CircuitBreaker
}

// WithBreaker 为文件服务加熔断保护
func WithBreaker(name string, next file.Service, cfg circuitbreaker.Config) file.Service {
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || apperrors.IsClientError(err)
	}
	cfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		metrics.SetBreakerState(name, int(to))
		logger.Warn("存储熔断器状态变化", nil, map[string]interface{}{
			"name": name,
			"from": from.String(),
			"to":   to.String(),
		})
	}
	return &guardedService{next: next, breaker: circuitbreaker.New(name, cfg)}
}

func (s *guardedService) SaveFile(ctx context.Context, upload *file.Upload, allowedExtensions []string) (string, error) {
	var name string
	err := s.breaker.Execute(func() error {
		var err error
		name, err = s.next.SaveFile(ctx, upload, allowedExtensions)
		return err
	})
	return name, s.translate(err)
}

func (s *guardedService) DeleteFile(ctx context.Context, fileName string) error {
	return s.translate(s.breaker.Execute(func() error {
		return s.next.DeleteFile(ctx, fileName)
	}))
}

func (s *guardedService) translate(err error) error {
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return apperrors.WithCause(apperrors.ErrCodeStorageError, "存储服务暂不可用", err)
	}
	return err
}
