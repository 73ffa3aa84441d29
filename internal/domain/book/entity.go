package book

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// Book 图书实体
// 设计说明:
// 1. Image保存存储层生成的文件名,空字符串表示没有封面
// 2. GenreID引用已存在的分类(由数据库外键保证)
// 3. Price使用decimal避免浮点误差,数据库列为decimal(10,2)
type Book struct {
	ID         uint
	Name       string          // 书名
	AuthorName string          // 作者
	Image      string          // 封面文件名(可为空)
	GenreID    uint            // 分类ID
	Price      decimal.Decimal // 价格
	GenreName  string          // 分类名称(只读,列表展示时由仓储填充)
}

// HasImage 是否有封面图片
func (b *Book) HasImage() bool {
	return strings.TrimSpace(b.Image) != ""
}

// Validate 实体校验
// 业务规则:
// - 书名、作者必填,最长100个字符
// - 必须选择分类
// - 价格不能为负数
func (b *Book) Validate() error {
	err := validation.ValidateStruct(b,
		validation.Field(&b.Name,
			validation.Required.Error("Введите название книги"),
			validation.RuneLength(1, 100).Error("Название не может превышать 100 символов"),
		),
		validation.Field(&b.AuthorName,
			validation.Required.Error("Введите имя автора"),
			validation.RuneLength(1, 100).Error("Имя автора не может превышать 100 символов"),
		),
		validation.Field(&b.GenreID,
			validation.Required.Error("Выберите жанр"),
		),
		validation.Field(&b.Price,
			validation.By(nonNegative),
		),
	)
	if err != nil {
		return apperrors.WithCause(apperrors.ErrCodeInvalidParams, firstMessage(err), ErrInvalidBook)
	}
	return nil
}

func nonNegative(value interface{}) error {
	price, _ := value.(decimal.Decimal)
	if price.IsNegative() {
		return validation.NewError("validation_price_negative", "Цена не может быть отрицательной")
	}
	return nil
}

// firstMessage 取第一条校验错误的提示(按字段声明顺序)
func firstMessage(err error) string {
	errs, ok := err.(validation.Errors)
	if !ok {
		return err.Error()
	}
	for _, field := range []string{"Name", "AuthorName", "GenreID", "Price"} {
		if fieldErr, ok := errs[field]; ok && fieldErr != nil {
			return fieldErr.Error()
		}
	}
	return err.Error()
}
