package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于区分错误类型（校验失败、资源不存在、内部错误）
// 2. Message是展示给管理员的提示信息（界面语言为俄语）
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// WithCause 基于预定义错误派生一个新错误，保留错误码并挂上原因
// 例如：book.NotFound(id) 使用具体id生成提示，同时errors.Is(err, ErrBookNotFound)仍成立
func WithCause(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// Wrap 包装系统错误（如数据库错误、存储错误）
// 用途：将底层错误转换为内部错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、资源不存在）
// - 5xxxx: 服务端错误（数据库异常、文件存储失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeStorageError  = 50003 // 文件存储错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound      = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound  = 40401 // 用户不存在
	ErrCodeBookNotFound  = 40402 // 图书不存在
	ErrCodeGenreNotFound = 40403 // 分类不存在
	ErrCodeFileNotFound  = 40404 // 文件不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError  = 40000 // 业务错误(通用)
	ErrCodeEmailDuplicate = 40003 // 邮箱已存在
	ErrCodeWeakPassword   = 40005 // 密码强度不足
	ErrCodeDuplicateEntry = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams       = 40900 // 参数错误
	ErrCodeBindError           = 40901 // 参数绑定失败
	ErrCodeFileTooLarge        = 40906 // 上传文件过大
	ErrCodeExtensionNotAllowed = 40907 // 文件扩展名不允许
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Внутренняя ошибка сервера")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Ошибка базы данных")
	ErrRedisError    = New(ErrCodeRedisError, "Ошибка сервиса кэширования")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "Требуется вход в систему")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "Недействительный токен")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Срок действия токена истёк")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "Неверный пароль")
	ErrForbidden       = New(ErrCodeForbidden, "Доступ запрещён")

	// 资源不存在
	ErrUserNotFound = New(ErrCodeUserNotFound, "Пользователь не найден")

	// 业务规则
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "Этот email уже зарегистрирован")
	ErrWeakPassword   = New(ErrCodeWeakPassword, "Пароль должен содержать 8-20 символов, буквы и цифры")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Некорректные параметры")
	ErrBindError     = New(ErrCodeBindError, "Некорректный формат данных")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}

// CodeOf 返回错误链上第一个AppError的错误码，非AppError返回ErrCodeInternal
func CodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsClientError 错误码是否属于4xxxx（调用方可以直接展示Message）
func IsClientError(err error) bool {
	code := CodeOf(err)
	return code >= 40000 && code < 50000
}
