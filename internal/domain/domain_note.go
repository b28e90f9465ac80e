// Package domain 定义领域模型和接口
package domain

import "time"

// 保留配色，用于与生命周期标志联动
const (
	// ColorDefault 默认底色
	ColorDefault = "#ffffff"
	// ColorArchive 归档底色
	ColorArchive = "#fffde7"
	// ColorTrash 回收站底色
	ColorTrash = "#5f6368"
)

// NoteView 定义笔记列表视图
type NoteView string

const (
	NoteViewAll      NoteView = "all"
	NoteViewArchived NoteView = "archived"
	NoteViewTrash    NoteView = "trash"
	NoteViewLabel    NoteView = "label"
)

// NoteItem 清单项，用于清单型笔记
type NoteItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Note 笔记领域模型
// Content 与 Items 互斥：文本型笔记只有 Content，清单型笔记只有 Items
type Note struct {
	ID         int64
	UID        int64
	Title      string
	Content    string
	Items      []NoteItem
	Color      string
	IsPinned   bool
	IsArchived bool
	IsTrash    bool
	LabelIDs   []int64
	SortOrder  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NotePatch 笔记更新补丁，nil 字段表示不修改
type NotePatch struct {
	Title      *string
	Content    *string
	Items      *[]NoteItem
	Color      *string
	IsPinned   *bool
	IsArchived *bool
	IsTrash    *bool
	LabelIDs   *[]int64
	SortOrder  *int64
}

// IsList 判断是否为清单型笔记
func (n *Note) IsList() bool {
	return n.Items != nil
}

// HasLabel 判断笔记是否携带指定标签
func (n *Note) HasLabel(labelID int64) bool {
	for _, id := range n.LabelIDs {
		if id == labelID {
			return true
		}
	}
	return false
}
