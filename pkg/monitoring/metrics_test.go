package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue 从registry中读取counter的值
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := 0
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] == lp.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetricsCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsCollector(reg)

	m.RecordRepeatGuard("article.create", "rejected")
	m.RecordRepeatGuard("article.create", "rejected")
	m.RecordRepeatGuard("article.create", "acquired")
	m.RecordCall("article.list", 2*time.Second, true)
	m.RecordCall("article.list", time.Millisecond, false)
	m.RecordSchedulerRun("publish", "success")
	m.RecordHTTPRequest("GET", "/api/v1/articles/", "200", time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, reg, "blog_repeat_guard_total",
		map[string]string{"rule": "article.create", "outcome": "rejected"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "blog_slow_calls_total", map[string]string{"name": "article.list"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "blog_scheduler_runs_total",
		map[string]string{"job": "publish", "result": "success"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "blog_http_requests_total",
		map[string]string{"method": "GET", "status_code": "200"}))
}
