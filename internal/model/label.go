package model

import (
	"github.com/haierkeys/keep-note-service/pkg/timex"
)

// Label 标签数据库模型
type Label struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UID       int64      `gorm:"column:uid;index:idx_label_uid"`
	Name      string     `gorm:"column:name"`
	CreatedAt timex.Time `gorm:"column:created_at"`
}

// TableName 指定表名
func (Label) TableName() string {
	return "label"
}
