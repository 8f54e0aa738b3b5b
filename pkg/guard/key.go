package guard

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprPrefix 以它开头的模板按expr表达式计算
const ExprPrefix = "expr:"

// Fields 生成key时可以使用的请求数据
type Fields struct {
	IP     string
	User   string
	Method string
	Path   string
	Param  func(name string) string
	Query  func(name string) string
	Header func(name string) string
}

func lookup(f func(string) string, name string) string {
	if f == nil {
		return ""
	}
	return f(name)
}

// value 占位符的值，未知的占位符返回空字符串
func (f Fields) value(placeholder string) string {
	switch placeholder {
	case "ip":
		return f.IP
	case "user":
		return f.User
	case "method":
		return f.Method
	case "path":
		return f.Path
	}

	kind, name, ok := strings.Cut(placeholder, ".")
	if !ok {
		return ""
	}
	switch kind {
	case "param":
		return lookup(f.Param, name)
	case "query":
		return lookup(f.Query, name)
	case "header":
		return lookup(f.Header, name)
	}
	return ""
}

func (f Fields) env() map[string]interface{} {
	return map[string]interface{}{
		"ip":     f.IP,
		"user":   f.User,
		"method": f.Method,
		"path":   f.Path,
		"param":  func(name string) string { return lookup(f.Param, name) },
		"query":  func(name string) string { return lookup(f.Query, name) },
		"header": func(name string) string { return lookup(f.Header, name) },
	}
}

// RenderKey 根据模板生成key
//
// 占位符: {ip} {user} {method} {path} {param.<name>} {query.<name>} {header.<name>}
// 例如 "article:update:{param.id}"。
// 以 "expr:" 开头时按expr表达式计算，例如 `expr:"login:" + ip + ":" + query("type")`。
func RenderKey(template string, fields Fields) (string, error) {
	if code, ok := strings.CutPrefix(template, ExprPrefix); ok {
		return defaultEvaluator.evaluate(code, fields)
	}

	var b strings.Builder
	rest := template
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		b.WriteString(fields.value(rest[start+1 : start+end]))
		rest = rest[start+end+1:]
	}
	return b.String(), nil
}

// keyEvaluator 缓存编译后的表达式
type keyEvaluator struct {
	cache map[string]*vm.Program
	mutex sync.RWMutex
}

var defaultEvaluator = &keyEvaluator{cache: make(map[string]*vm.Program)}

func (e *keyEvaluator) program(code string) (*vm.Program, error) {
	e.mutex.RLock()
	program, ok := e.cache[code]
	e.mutex.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(code)
	if err != nil {
		return nil, fmt.Errorf("编译key表达式失败: %w", err)
	}

	e.mutex.Lock()
	e.cache[code] = program
	e.mutex.Unlock()
	return program, nil
}

func (e *keyEvaluator) evaluate(code string, fields Fields) (string, error) {
	program, err := e.program(code)
	if err != nil {
		return "", err
	}
	output, err := expr.Run(program, fields.env())
	if err != nil {
		return "", fmt.Errorf("执行key表达式失败: %w", err)
	}
	return fmt.Sprint(output), nil
}
