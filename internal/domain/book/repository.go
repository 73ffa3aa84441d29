package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于在用例测试中替换为内存实现
type Repository interface {
	// List 查询全部图书(包含分类名称)
	List(ctx context.Context) ([]*Book, error)

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Create 创建图书,回填ID
	Create(ctx context.Context, book *Book) error

	// Update 按ID整体更新图书,不存在返回ErrBookNotFound
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	Delete(ctx context.Context, book *Book) error
}
