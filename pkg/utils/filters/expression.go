package filters

import (
	"fmt"

	"gorm.io/gorm/clause"
)

type Contains clause.Like
type IContains clause.Like

func (c Contains) Build(builder clause.Builder) {
	builder.WriteQuoted(c.Column)
	builder.WriteString(" LIKE ")
	builder.AddVar(builder, fmt.Sprintf("%%%v%%", c.Value))
}

// Build 大小写不敏感的包含，mysql下LIKE本身不区分大小写
func (ic IContains) Build(builder clause.Builder) {
	builder.WriteString("LOWER(")
	builder.WriteQuoted(ic.Column)
	builder.WriteString(") LIKE LOWER(")
	builder.AddVar(builder, fmt.Sprintf("%%%v%%", ic.Value))
	builder.WriteString(")")
}
