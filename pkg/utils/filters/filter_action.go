package filters

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilterAction 多个字段过滤条件的组合(AND)
type FilterAction struct {
	Options []*FilterOption
}

func NewFilterAction(options []*FilterOption) Filter {
	return &FilterAction{Options: options}
}

func (f *FilterAction) Filter(db *gorm.DB) *gorm.DB {
	var conds []clause.Expression
	for _, opt := range f.Options {
		if c := opt.ParseExpression(); c != nil {
			conds = append(conds, c)
		}
	}
	if len(conds) > 0 {
		db = db.Clauses(conds...)
	}
	return db
}

// FromQueryGetFilterAction 根据查询参数生成过滤动作，没有任何条件时返回nil
func FromQueryGetFilterAction(q Query, opts []*FilterOption) Filter {
	var options []*FilterOption
	for _, opt := range opts {
		o := *opt
		o.SetValueByQuery(q)
		if o.Value != nil && o.Value != "" {
			options = append(options, &o)
		}
	}

	if len(options) < 1 {
		return nil
	}
	return &FilterAction{Options: options}
}
