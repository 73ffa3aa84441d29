package dto

import (
	"mime/multipart"

	appbook "github.com/xiebiao/bookstore-admin/internal/application/book"
	"github.com/xiebiao/bookstore-admin/pkg/flash"
)

// BookForm 新增/修改图书表单（multipart/form-data）
// 说明：字段校验在领域层完成（提示信息需要与界面语言一致），这里只做类型绑定。
// 页面回传的当前封面文件名（image字段）不绑定：新增时没有封面，修改时以数据库为准
type BookForm struct {
	ID         uint                  `form:"id"`
	Name       string                `form:"name"`
	AuthorName string                `form:"author_name"`
	GenreID    uint                  `form:"genre_id"`
	Price      float64               `form:"price"`
	ImageFile  *multipart.FileHeader `form:"image_file" swaggerignore:"true"` // 新封面（可选）
}

// ToBookDTO 表单 → 应用层DTO（不含上传文件，由Handler打开后填入）
func (f *BookForm) ToBookDTO() *appbook.BookDTO {
	return &appbook.BookDTO{
		ID:         f.ID,
		Name:       f.Name,
		AuthorName: f.AuthorName,
		GenreID:    f.GenreID,
		Price:      f.Price,
	}
}

// BookListPage 图书列表页
type BookListPage struct {
	Books []appbook.BookListItem `json:"books"`
	Flash flash.Flash            `json:"flash"`
}

// BookFormPage 新增/修改表单页（提交失败时带上用户已填写的内容和错误提示）
type BookFormPage struct {
	Book  *appbook.BookDTO `json:"book"`
	Flash flash.Flash      `json:"flash"`
}
