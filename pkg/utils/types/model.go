package types

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 所有表共用的字段
type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Deleted   *bool          `gorm:"type:boolean;default:false" json:"deleted" form:"deleted"`
}

// Strftime 格式化当前的时间戳，删除资源时会用到
func (m *BaseModel) Strftime(format string) string {
	if format == "" {
		format = "20060102150405"
	}
	return time.Now().Format(format)
}

// MarkDeleted 把Deleted设置为true
func (m *BaseModel) MarkDeleted() {
	trueValue := true
	m.Deleted = &trueValue
}
