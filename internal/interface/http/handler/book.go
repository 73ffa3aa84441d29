package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-admin/internal/application/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/flash"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// 重定向目标
const (
	BookListPath = "/admin/books"     // 修改、删除后回到列表页
	BookAddPath  = "/admin/books/add" // 新增成功后回到新增表单，方便连续录入
)

// FlashStore 重定向提示存储（实现见persistence/redis.FlashStore）
type FlashStore interface {
	Put(ctx context.Context, owner string, f flash.Flash) error
	Pop(ctx context.Context, owner string) (flash.Flash, error)
}

// BookHandler 图书管理HTTP处理器
// 设计说明：
// 1. POST成功后303重定向（新增回到新增表单，其他回到列表页），提示消息通过FlashStore带过去
// 2. 提交失败时不重定向，返回表单数据（含分类下拉框）和错误提示
type BookHandler struct {
	listBooks  *appbook.ListBooksUseCase
	addBook    *appbook.AddBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
	flashes    FlashStore
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	addBook *appbook.AddBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	flashes FlashStore,
) *BookHandler {
	return &BookHandler{
		listBooks:  listBooks,
		addBook:    addBook,
		updateBook: updateBook,
		deleteBook: deleteBook,
		flashes:    flashes,
	}
}

// Index 图书列表
// @Summary      图书列表
// @Description  全部图书（含分类名称），附带上一次操作的提示消息
// @Tags         图书管理
// @Produce      json
// @Security     Bearer
// @Success      200 {object} response.Response{data=dto.BookListPage}
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "不是管理员"
// @Router       /admin/books [get]
func (h *BookHandler) Index(c *gin.Context) {
	books, err := h.listBooks.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.BookListPage{Books: books, Flash: h.popFlash(c)})
}

// AddForm 新增表单（附带上一次新增的提示消息）
// @Summary      新增图书表单
// @Tags         图书管理
// @Produce      json
// @Security     Bearer
// @Success      200 {object} response.Response{data=dto.BookFormPage}
// @Router       /admin/books/add [get]
func (h *BookHandler) AddForm(c *gin.Context) {
	book, err := h.addBook.Prepare(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.BookFormPage{Book: book, Flash: h.popFlash(c)})
}

// Add 新增图书
// @Summary      新增图书
// @Description  成功303跳转回新增表单；失败返回表单数据和错误提示
// @Tags         图书管理
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        name        formData string true  "书名"
// @Param        author_name formData string true  "作者"
// @Param        genre_id    formData int    true  "分类ID"
// @Param        price       formData number true  "价格"
// @Param        image_file  formData file   false "封面（.jpeg/.jpg/.png，不超过1MB）"
// @Success      303 "跳转到 /admin/books/add"
// @Failure      422 {object} response.Response{data=dto.BookFormPage} "校验失败"
// @Failure      500 {object} response.Response{data=dto.BookFormPage} "保存失败"
// @Router       /admin/books/add [post]
func (h *BookHandler) Add(c *gin.Context) {
	book, closeFile, err := bindBookForm(c)
	if err != nil {
		h.rejectForm(c, book, h.addBook.Redisplay, err)
		return
	}
	defer closeFile()

	if err := h.addBook.Execute(c.Request.Context(), book); err != nil {
		renderFormError(c, book, err)
		return
	}

	h.redirectWithFlash(c, BookAddPath, flash.Success(appbook.MsgBookAdded))
}

// EditForm 修改表单
// @Summary      修改图书表单
// @Description  图书不存在时303跳转到列表页并提示
// @Tags         图书管理
// @Produce      json
// @Security     Bearer
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookFormPage}
// @Success      303 "图书不存在"
// @Router       /admin/books/{id}/edit [get]
func (h *BookHandler) EditForm(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := h.updateBook.Prepare(c.Request.Context(), id)
	if err != nil {
		if appbook.KindOf(err) == appbook.KindNotFound {
			h.redirectWithFlash(c, BookListPath, flash.Error(appbook.FailureMessage(err, appbook.MsgSaveFailed)))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, dto.BookFormPage{Book: book})
}

// Edit 修改图书
// @Summary      修改图书
// @Description  上传新封面时替换旧封面；成功303跳转到列表页
// @Tags         图书管理
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        id          path     int    true  "图书ID"
// @Param        name        formData string true  "书名"
// @Param        author_name formData string true  "作者"
// @Param        genre_id    formData int    true  "分类ID"
// @Param        price       formData number true  "价格"
// @Param        image_file  formData file   false "新封面"
// @Success      303 "跳转到 /admin/books"
// @Failure      404 {object} response.Response{data=dto.BookFormPage} "图书不存在"
// @Failure      422 {object} response.Response{data=dto.BookFormPage} "校验失败"
// @Router       /admin/books/{id}/edit [post]
func (h *BookHandler) Edit(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, closeFile, err := bindBookForm(c)
	book.ID = id
	if err != nil {
		h.rejectForm(c, book, h.updateBook.Redisplay, err)
		return
	}
	defer closeFile()

	if err := h.updateBook.Execute(c.Request.Context(), book); err != nil {
		renderFormError(c, book, err)
		return
	}

	h.redirectWithFlash(c, BookListPath, flash.Success(appbook.MsgBookUpdated))
}

// Delete 删除图书
// @Summary      删除图书
// @Description  总是303跳转到列表页，结果通过提示消息展示
// @Tags         图书管理
// @Security     Bearer
// @Param        id path int true "图书ID"
// @Success      303 "跳转到 /admin/books"
// @Router       /admin/books/{id}/delete [post]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	h.redirectWithFlash(c, BookListPath, h.deleteBook.Execute(c.Request.Context(), id))
}

func (h *BookHandler) redirectWithFlash(c *gin.Context, location string, f flash.Flash) {
	if err := h.flashes.Put(c.Request.Context(), flashOwner(c), f); err != nil {
		logger.Warn("保存提示失败", err, map[string]interface{}{"user_id": middleware.GetUserID(c)})
	}
	response.Redirect(c, location)
}

// popFlash 取出上一次重定向带来的提示，读取失败只记日志
func (h *BookHandler) popFlash(c *gin.Context) flash.Flash {
	f, err := h.flashes.Pop(c.Request.Context(), flashOwner(c))
	if err != nil {
		logger.Warn("读取提示失败", err, map[string]interface{}{"user_id": middleware.GetUserID(c)})
	}
	return f
}

// bindBookForm 绑定表单并打开上传文件
// 成功时返回的closeFile在请求结束前调用；
// 失败时仍返回按原始表单值尽量还原的DTO，用于重新渲染表单
func bindBookForm(c *gin.Context) (*appbook.BookDTO, func(), error) {
	var form dto.BookForm
	if err := c.ShouldBind(&form); err != nil {
		return rawBookDTO(c), nil, apperrors.WithCause(apperrors.ErrCodeBindError, apperrors.ErrBindError.Message, err)
	}

	book := form.ToBookDTO()
	if form.ImageFile == nil {
		return book, func() {}, nil
	}

	f, err := form.ImageFile.Open()
	if err != nil {
		return book, nil, apperrors.Wrap(err, "打开上传文件失败")
	}
	book.ImageFile = &file.Upload{
		Filename: form.ImageFile.Filename,
		Size:     form.ImageFile.Size,
		Content:  f,
	}
	return book, func() { _ = f.Close() }, nil
}

// rawBookDTO 逐个字段解析表单，无法解析的数字字段取零值
func rawBookDTO(c *gin.Context) *appbook.BookDTO {
	genreID, _ := strconv.ParseUint(c.PostForm("genre_id"), 10, 64)
	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	return &appbook.BookDTO{
		Name:       c.PostForm("name"),
		AuthorName: c.PostForm("author_name"),
		GenreID:    uint(genreID),
		Price:      price,
	}
}

// rejectForm 提交未进入用例就失败：补全分类下拉框后重新渲染表单
func (h *BookHandler) rejectForm(c *gin.Context, book *appbook.BookDTO, redisplay func(context.Context, *appbook.BookDTO) error, err error) {
	if rerr := redisplay(c.Request.Context(), book); rerr != nil {
		logger.Warn("加载分类列表失败", rerr, nil)
	}
	renderFormError(c, book, err)
}

// renderFormError 提交失败：返回表单数据，用户错误原样提示，其他错误只提示"保存失败"
func renderFormError(c *gin.Context, book *appbook.BookDTO, err error) {
	message := appbook.FailureMessage(err, appbook.MsgSaveFailed)
	code := apperrors.ErrCodeInternal
	if appbook.KindOf(err) != appbook.KindInternal {
		code = apperrors.CodeOf(err)
	}
	response.ErrorWithData(c, code, message, dto.BookFormPage{Book: book, Flash: flash.Error(message)})
}

func bookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperrors.ErrInvalidParams)
		return 0, false
	}
	return uint(id), true
}

// flashOwner 提示按用户隔离
func flashOwner(c *gin.Context) string {
	return strconv.FormatUint(uint64(middleware.GetUserID(c)), 10)
}
