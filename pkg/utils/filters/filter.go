package filters

import (
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	FILTER_EQ = iota
	FILTER_NEQ
	FILTER_CONTAINS
	FILTER_ICONTAINS
	FILTER_GT
	FILTER_GTE
	FILTER_LT
	FILTER_LTE
	FILTER_LIKE
	FILTER_IN
)

// Filter 作用到gorm查询上的过滤动作
type Filter interface {
	Filter(db *gorm.DB) *gorm.DB
}

type NewClauseExpressionFunc = func(column string, value interface{}) clause.Expression

var ClauseExpressionMap = map[int]NewClauseExpressionFunc{
	FILTER_EQ: func(column string, value interface{}) clause.Expression {
		return clause.Eq{Column: clause.Column{Name: column}, Value: value}
	},
	FILTER_NEQ: func(column string, value interface{}) clause.Expression {
		return clause.Neq{Column: clause.Column{Name: column}, Value: value}
	},
	FILTER_CONTAINS: func(column string, value interface{}) clause.Expression {
		return Contains{Column: clause.Column{Name: column}, Value: value}
	},
	FILTER_ICONTAINS: func(column string, value interface{}) clause.Expression {
		return IContains{Column: clause.Column{Name: column}, Value: value}
	},
	FILTER_LIKE: func(column string, value interface{}) clause.Expression {
		return clause.Like{Column: clause.Column{Name: column}, Value: value}
	},
	FILTER_GT: func(column string, value interface{}) clause.Expression {
		return clause.Gt{Column: clause.Column{Name: column}, Value: value}
	},
	FILTER_GTE: func(column string, value interface{}) clause.Expression {
		return clause.Gte{Column: clause.Column{Name: column}, Value: value}
	},
	FILTER_LT: func(column string, value interface{}) clause.Expression {
		return clause.Lt{Column: clause.Column{Name: column}, Value: value}
	},
	FILTER_LTE: func(column string, value interface{}) clause.Expression {
		return clause.Lte{Column: clause.Column{Name: column}, Value: value}
	},
	FILTER_IN: func(column string, value interface{}) clause.Expression {
		var values []interface{}
		if s, ok := value.(string); ok {
			for _, item := range strings.Split(s, ",") {
				values = append(values, item)
			}
		} else {
			reflectValue := reflect.ValueOf(value)
			for i := 0; i < reflectValue.Len(); i++ {
				values = append(values, reflectValue.Index(i).Interface())
			}
		}
		return clause.IN{Column: clause.Column{Name: column}, Values: values}
	},
}

// Query 能从中读取查询参数的对象，*gin.Context 实现了它
type Query interface {
	Query(key string) string
}

// FilterOption 单个字段的过滤条件
type FilterOption struct {
	QueryKey string      // 查询参数名，为空时使用Column
	Column   string      // 数据库字段
	Value    interface{} // 过滤值
	Op       int         // 操作符: FILTER_EQ ...
}

func (o *FilterOption) queryKey() string {
	if o.QueryKey == "" {
		return o.Column
	}
	return o.QueryKey
}

// SetValueByQuery 从查询参数中读取值
func (o *FilterOption) SetValueByQuery(q Query) {
	if value := q.Query(o.queryKey()); value != "" {
		o.Value = value
	}
}

// ParseExpression 把选项解析为gorm表达式，值为空时返回nil
func (o *FilterOption) ParseExpression() clause.Expression {
	if o.Value == nil || o.Value == "" || o.Column == "" {
		return nil
	}
	if newClauseExpressionFunc, exist := ClauseExpressionMap[o.Op]; exist {
		return newClauseExpressionFunc(o.Column, o.Value)
	}
	return nil
}

// Filter 实现Filter接口
func (o *FilterOption) Filter(db *gorm.DB) *gorm.DB {
	if c := o.ParseExpression(); c != nil {
		db = db.Clauses(c)
	}
	return db
}
