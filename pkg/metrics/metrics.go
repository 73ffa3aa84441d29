// Package metrics 基于Prometheus的指标收集
//
// 指标分两组：
//   - HTTP指标：请求总数、耗时分布、处理中的请求数（由middleware.Metrics记录）
//   - 图书管理指标：增删改结果计数、上传图片大小分布、图片文件删除结果
//
// 暴露方式：
//
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds、_bytes）。
// 标签只使用有限取值（operation、result），不要用book_id这类高基数字段。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 图书操作结果标签取值
const (
	ResultSuccess    = "success"
	ResultValidation = "validation_error"
	ResultNotFound   = "not_found"
	ResultInternal   = "internal_error"
)

var (
	initOnce sync.Once

	// ========== HTTP指标 ==========

	// HTTPRequestsTotal HTTP请求总数（method、path、status）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（method、path）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// ========== 图书管理指标 ==========

	// BookOperationsTotal 图书操作结果（operation=list|add|update|delete, result）
	BookOperationsTotal *prometheus.CounterVec

	// ImageUploadBytes 上传封面图片大小分布
	ImageUploadBytes prometheus.Histogram

	// ImageDeletionsTotal 图片文件删除结果（result=success|failure）
	ImageDeletionsTotal *prometheus.CounterVec

	// StorageBreakerState 存储熔断器状态（0=CLOSED 1=OPEN 2=HALF_OPEN）
	StorageBreakerState *prometheus.GaugeVec
)

// InitMetrics 初始化所有指标（幂等，可重复调用）
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_admin_operations_total",
				Help: "图书管理操作总数",
			},
			[]string{"operation", "result"},
		)

		ImageUploadBytes = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "book_image_upload_bytes",
				Help:    "上传的封面图片大小（字节）",
				Buckets: prometheus.ExponentialBuckets(16*1024, 2, 8), // 16KB ~ 2MB
			},
		)

		ImageDeletionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_image_deletions_total",
				Help: "封面图片删除次数",
			},
			[]string{"result"},
		)

		StorageBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "storage_circuit_breaker_state",
				Help: "存储熔断器状态（0=CLOSED 1=OPEN 2=HALF_OPEN）",
			},
			[]string{"name"},
		)
	})
}

// IncCounterVec 递增带标签的Counter
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录带标签的Histogram观测值
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}

// RecordBookOperation 记录一次图书操作结果
func RecordBookOperation(operation, result string) {
	IncCounterVec(BookOperationsTotal, map[string]string{
		"operation": operation,
		"result":    result,
	})
}

// RecordImageDeletion 记录一次图片删除
func RecordImageDeletion(err error) {
	result := ResultSuccess
	if err != nil {
		result = "failure"
	}
	IncCounterVec(ImageDeletionsTotal, map[string]string{"result": result})
}

// SetBreakerState 记录熔断器状态
func SetBreakerState(name string, state int) {
	if StorageBreakerState == nil {
		return
	}
	StorageBreakerState.WithLabelValues(name).Set(float64(state))
}
