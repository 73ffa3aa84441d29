package book

import (
	"github.com/xiebiao/bookstore-admin/internal/domain/file"
)

// BookDTO 新增/修改表单数据
// 设计说明:
// 1. 比Book实体多出上传文件和分类下拉框,只用于渲染与提交,不会持久化
// 2. 提交失败时原样返回给前端,保证用户已填写的内容不丢失
type BookDTO struct {
	ID         uint         `json:"id"`
	Name       string       `json:"name"`
	AuthorName string       `json:"author_name"`
	Image      string       `json:"image,omitempty"` // 当前封面文件名
	GenreID    uint         `json:"genre_id"`
	Price      float64      `json:"price"`
	ImageFile  *file.Upload `json:"-"`          // 本次上传的新封面(可为空)
	GenreList  []SelectItem `json:"genre_list"` // 分类下拉框
}

// SelectItem 下拉框选项
type SelectItem struct {
	Text     string `json:"text"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// BookListItem 列表项
type BookListItem struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	AuthorName string `json:"author_name"`
	Image      string `json:"image,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	GenreID    uint   `json:"genre_id"`
	GenreName  string `json:"genre_name"`
	Price      string `json:"price"` // 两位小数,如"450.00"
}
