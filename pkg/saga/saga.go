// Package saga 顺序执行一组步骤，失败时逆序补偿已完成的步骤
//
// 管理后台用它串起"保存封面图片 → 写入图书"：
// 数据库写入失败时，刚刚保存的图片会被补偿删除，不会留下孤儿文件。
//
//	s := saga.NewSaga(10 * time.Second)
//	s.AddStep("保存封面图片", storeImage, deleteStoredImage)
//	s.AddStep("保存图书", createBook, nil)
//	err := s.Execute(ctx)
package saga

import (
	"context"
	"fmt"
	"time"

	"github.com/xiebiao/bookstore-admin/pkg/logger"
)

// Step Saga中的一个步骤
// Action和Compensate都可以为nil（最后一步通常无需补偿）
type Step struct {
	Name       string                          // 步骤名称（用于日志）
	Action     func(ctx context.Context) error // 正向操作
	Compensate func(ctx context.Context) error // 补偿操作
}

// Saga 一次顺序执行的步骤链
type Saga struct {
	steps    []Step        // 所有步骤
	executed []Step        // 已执行的步骤（用于补偿）
	timeout  time.Duration // 整体超时时间，0表示不限制
}

// NewSaga 创建Saga
func NewSaga(timeout time.Duration) *Saga {
	return &Saga{
		steps:   make([]Step, 0, 2),
		timeout: timeout,
	}
}

// AddStep 添加步骤（按添加顺序执行，按逆序补偿）
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行所有步骤
// 任一步骤失败：逆序补偿已完成的步骤，返回包装后的原始错误（errors.As可取出AppError）
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			// 使用新Context，避免补偿也因超时失败
			s.compensate(context.WithoutCancel(ctx))
			return fmt.Errorf("saga超时: %w", err)
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.WithoutCancel(ctx))
				return fmt.Errorf("步骤[%d:%s]执行失败: %w", i, step.Name, err)
			}
		}

		s.executed = append(s.executed, step)
	}

	return nil
}

// compensate 逆序执行补偿，补偿失败只记录日志，继续补偿其他步骤
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			logger.Warn("补偿失败", err, map[string]interface{}{"step": step.Name})
		}
	}

	s.executed = nil
}
