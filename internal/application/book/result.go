package book

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// 提示消息(界面语言为俄语)
const (
	MsgBookAdded    = "Книга добавлена успешно"
	MsgBookUpdated  = "Книга обновлена успешно"
	MsgBookDeleted  = "Книга удалена успешно"
	MsgSaveFailed   = "Ошибка при сохранении данных"
	MsgDeleteFailed = "Ошибка при удалении данных"
)

// Kind 用例执行结果类型
type Kind int

const (
	KindSuccess    Kind = iota // 成功
	KindValidation             // 用户输入错误(图片过大、格式不允许、字段校验失败)
	KindNotFound               // 图书或文件不存在
	KindInternal               // 其他错误(数据库、存储故障)
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return metrics.ResultSuccess
	case KindValidation:
		return metrics.ResultValidation
	case KindNotFound:
		return metrics.ResultNotFound
	default:
		return metrics.ResultInternal
	}
}

// KindOf 根据错误码判断结果类型
func KindOf(err error) Kind {
	if err == nil {
		return KindSuccess
	}
	code := apperrors.CodeOf(err)
	switch {
	case code >= 40400 && code < 40500:
		return KindNotFound
	case code >= 40000 && code < 50000:
		return KindValidation
	default:
		return KindInternal
	}
}

// FailureMessage 失败提示
// 用户错误原样展示;内部错误只展示fallback,原因写日志
func FailureMessage(err error, fallback string) string {
	switch KindOf(err) {
	case KindValidation, KindNotFound:
		return apperrors.GetAppError(err).Message
	default:
		return fallback
	}
}

// finish 记录指标,内部错误写Error日志
func finish(operation string, err error, fields map[string]interface{}) {
	kind := KindOf(err)
	metrics.RecordBookOperation(operation, kind.String())

	switch kind {
	case KindSuccess:
		logger.Info("book "+operation+" succeeded", fields)
	case KindInternal:
		logger.Error("book "+operation+" failed", err, fields)
	default:
		logger.Warn("book "+operation+" rejected", err, fields)
	}
}
