// Package flash 定义一次性提示消息
//
// 管理后台的每个写操作结束时都会产生一条提示：成功槽位和错误槽位相互独立，
// 两者可以同时有值（例如删除不存在的图书时）。提示只展示一次，展示后即丢弃。
package flash

// Flash 一次性提示消息（两个独立槽位）
type Flash struct {
	Success string `json:"success_message,omitempty"`
	Error   string `json:"error_message,omitempty"`
}

// Success 只有成功消息的Flash
func Success(message string) Flash {
	return Flash{Success: message}
}

// Error 只有错误消息的Flash
func Error(message string) Flash {
	return Flash{Error: message}
}

// IsEmpty 两个槽位都为空
func (f Flash) IsEmpty() bool {
	return f.Success == "" && f.Error == ""
}

// Merge 用other中非空的槽位覆盖当前值
func (f Flash) Merge(other Flash) Flash {
	if other.Success != "" {
		f.Success = other.Success
	}
	if other.Error != "" {
		f.Error = other.Error
	}
	return f
}
