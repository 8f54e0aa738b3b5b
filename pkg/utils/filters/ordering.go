package filters

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderingParam 排序参数的查询参数名常量
const OrderingParam string = "ordering"

// 可选的"-"前缀 + 字段名
var orderingRegMatch = regexp.MustCompile(`^(-)?([A-Za-z][\w]*)$`)

// Ordering 多字段排序，"-"前缀表示降序
type Ordering struct {
	Fields []string // 允许排序的字段列表
	Value  string   // 例如："name" 或 "-created_at" 或 "name,-created_at"
}

func NewOrdering(fields []string, value string) Filter {
	return &Ordering{Fields: fields, Value: value}
}

func (o *Ordering) allowed(field string) bool {
	for _, item := range o.Fields {
		if item == field {
			return true
		}
	}
	return false
}

// Columns 解析出允许排序的列，不在Fields中的字段会被忽略
func (o *Ordering) Columns() []clause.OrderByColumn {
	var columns []clause.OrderByColumn
	for _, part := range strings.Split(o.Value, ",") {
		items := orderingRegMatch.FindStringSubmatch(strings.TrimSpace(part))
		if len(items) != 3 || !o.allowed(items[2]) {
			continue
		}
		columns = append(columns, clause.OrderByColumn{
			Column: clause.Column{Name: items[2]},
			Desc:   items[1] == "-",
		})
	}
	return columns
}

func (o *Ordering) Filter(db *gorm.DB) *gorm.DB {
	columns := o.Columns()
	if len(columns) == 0 {
		return db
	}
	return db.Order(clause.OrderBy{Columns: columns})
}

// FromQueryGetOrderingAction 从查询参数中创建排序动作，value是没有传ordering时的默认值
func FromQueryGetOrderingAction(q Query, fields []string, value string) *Ordering {
	ordering := q.Query(OrderingParam)
	if ordering == "" {
		ordering = value
	}
	if ordering == "" || len(fields) == 0 {
		return nil
	}
	return &Ordering{Fields: fields, Value: ordering}
}
