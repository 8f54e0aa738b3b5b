package guard

import (
	"time"
)

// Rule 路由级别的防重复配置
type Rule struct {
	Name     string        // 规则名称，用于日志和监控
	Template string        // key模板，见 RenderKey
	TTL      time.Duration // 0 表示使用Guard的默认TTL
}

// NewRule 创建规则，TTL不能为负数
func NewRule(name, template string, ttl time.Duration) (Rule, error) {
	r := Rule{Name: name, Template: template, TTL: ttl}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// MustRule 同NewRule，出错时panic，用于注册路由
func MustRule(name, template string, ttl time.Duration) Rule {
	r, err := NewRule(name, template, ttl)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate 校验规则
func (r Rule) Validate() error {
	if r.TTL < 0 {
		return ErrInvalidTTL
	}
	return nil
}
