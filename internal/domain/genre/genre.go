package genre

import (
	"context"
)

// Genre 图书分类(只读)
type Genre struct {
	ID   uint
	Name string
}

// Repository 分类仓储接口
type Repository interface {
	// List 查询全部分类(用于下拉框)
	List(ctx context.Context) ([]*Genre, error)
}
