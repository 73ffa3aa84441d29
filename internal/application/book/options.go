package book

import (
	"strings"
	"time"
)

// Options 图书管理用例配置
type Options struct {
	// Timeout 单次写操作(保存图片+写库)的超时时间,0表示不限制
	Timeout time.Duration

	// StrictDeleteFlash 删除失败时不再附带"删除成功"提示
	// 默认false: 无论结果如何都写入成功提示,失败时额外写入错误提示
	StrictDeleteFlash bool

	// ImageBaseURL 封面图片访问前缀(列表页拼接image_url),为空则不拼接
	ImageBaseURL string

	// Events 图书变更事件，nil表示不发布
	Events EventPublisher
}

func (o Options) imageBaseURL() string {
	return strings.TrimRight(o.ImageBaseURL, "/")
}
