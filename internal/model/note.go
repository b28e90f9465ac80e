package model

import (
	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/pkg/timex"
)

// Note 笔记数据库模型
type Note struct {
	ID         int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UID        int64             `gorm:"column:uid;index:idx_note_uid"`
	Title      string            `gorm:"column:title"`
	Content    string            `gorm:"column:content"`
	Items      []domain.NoteItem `gorm:"column:items;serializer:json"`
	Color      string            `gorm:"column:color"`
	IsPinned   int               `gorm:"column:is_pinned;default:0"`
	IsArchived int               `gorm:"column:is_archived;default:0"`
	IsTrash    int               `gorm:"column:is_trash;default:0"`
	LabelIDs   []int64           `gorm:"column:label_ids;serializer:json"`
	SortOrder  int64             `gorm:"column:sort_order;default:0"`
	CreatedAt  timex.Time        `gorm:"column:created_at"`
	UpdatedAt  timex.Time        `gorm:"column:updated_at"`
}

// TableName 指定表名
func (Note) TableName() string {
	return "note"
}
