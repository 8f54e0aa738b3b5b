package filters

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const SearchParam string = "search"

// SearchAction 多字段模糊搜索(OR)
type SearchAction struct {
	Fields []string
	Value  string
}

func NewSearchAction(fields []string, value string) Filter {
	return &SearchAction{Fields: fields, Value: value}
}

func (s *SearchAction) Filter(db *gorm.DB) *gorm.DB {
	if s.Value == "" || len(s.Fields) == 0 {
		return db
	}

	var exprs []clause.Expression
	pattern := fmt.Sprintf("%%%s%%", s.Value)
	for _, field := range s.Fields {
		exprs = append(exprs, clause.Like{Column: clause.Column{Name: field}, Value: pattern})
	}
	return db.Where(clause.Or(exprs...))
}

func FromQueryGetSearchAction(q Query, fields []string) *SearchAction {
	search := q.Query(SearchParam)
	if search == "" || len(fields) == 0 {
		return nil
	}
	return &SearchAction{Fields: fields, Value: search}
}
