// Package monitoring 监控指标定义和收集
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector 监控指标收集器
type MetricsCollector struct {
	// HTTP请求相关指标
	HTTPRequestsTotal    *prometheus.CounterVec   // HTTP请求总数
	HTTPRequestDuration  *prometheus.HistogramVec // HTTP请求响应时间
	HTTPRequestsInFlight prometheus.Gauge         // 当前正在处理的HTTP请求数

	// 防重复提交
	RepeatGuardTotal *prometheus.CounterVec // 按规则和结果统计

	// 慢调用
	SlowCalls    *prometheus.CounterVec   // 超过阈值的调用次数
	CallDuration *prometheus.HistogramVec // 记录了耗时日志的调用时长

	// 业务指标
	ArticlesPublished *prometheus.CounterVec // 文章发布数，按来源: manual, scheduler
	ArticleViews      prometheus.Counter     // 文章阅读数
	UserLogins        *prometheus.CounterVec // 登录次数，按结果
	AttachmentBytes   prometheus.Counter     // 上传附件的总字节数

	// 定时任务
	SchedulerRuns *prometheus.CounterVec // 定时任务执行次数，按任务和结果
}

// NewMetricsCollector 创建监控指标收集器，指标注册到reg
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(reg)
	return &MetricsCollector{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blog_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "blog_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),

		RepeatGuardTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_repeat_guard_total",
				Help: "Repeat request guard outcomes",
			},
			[]string{"rule", "outcome"},
		),

		SlowCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_slow_calls_total",
				Help: "Number of calls slower than their threshold",
			},
			[]string{"name"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blog_call_duration_seconds",
				Help:    "Duration of timed calls in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"name"},
		),

		ArticlesPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_articles_published_total",
				Help: "Number of articles published",
			},
			[]string{"source"},
		),
		ArticleViews: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "blog_article_views_total",
				Help: "Number of article views",
			},
		),
		UserLogins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_user_logins_total",
				Help: "Number of login attempts",
			},
			[]string{"result"},
		),
		AttachmentBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "blog_attachment_bytes_total",
				Help: "Total size of uploaded attachments",
			},
		),

		SchedulerRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_scheduler_runs_total",
				Help: "Number of scheduler job runs",
			},
			[]string{"job", "result"},
		),
	}
}

// RecordHTTPRequest 记录HTTP请求
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRepeatGuard 记录防重复锁的结果
func (m *MetricsCollector) RecordRepeatGuard(rule, outcome string) {
	m.RepeatGuardTotal.WithLabelValues(rule, outcome).Inc()
}

// RecordCall 记录一次计时调用，slow表示超过了阈值
func (m *MetricsCollector) RecordCall(name string, duration time.Duration, slow bool) {
	m.CallDuration.WithLabelValues(name).Observe(duration.Seconds())
	if slow {
		m.SlowCalls.WithLabelValues(name).Inc()
	}
}

// RecordSchedulerRun 记录定时任务执行
func (m *MetricsCollector) RecordSchedulerRun(job, result string) {
	m.SchedulerRuns.WithLabelValues(job, result).Inc()
}

// GlobalMetrics 全局指标，注册到prometheus默认的registry
var GlobalMetrics = NewMetricsCollector(prometheus.DefaultRegisterer)
