package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），0表示成功
// 2. Message是用户友好的提示信息
// 3. Data是页面数据（列表、表单），失败重新渲染表单时同样返回
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	books, err := listBooks.Execute(ctx)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误记录到日志，客户端只看到Message
	if appErr.Err != nil {
		logger.Error("request failed", appErr.Err, map[string]interface{}{
			"code":   appErr.Code,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	}

	c.JSON(statusOf(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(statusOf(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ErrorWithData 失败但仍返回页面数据
// 用于表单提交失败后重新渲染表单（保留用户已填写的内容）
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(statusOf(code), Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Redirect 303跳转（POST-Redirect-GET）
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// statusOf 业务错误码 → HTTP状态码
func statusOf(code int) int {
	switch {
	case code == 0:
		return http.StatusOK
	case code >= 40100 && code < 40104:
		return http.StatusUnauthorized
	case code == apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40000 && code < 50000:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
