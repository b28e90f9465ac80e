// Package dto 定义请求数据传输对象
package dto

import (
	"github.com/haierkeys/keep-note-service/internal/domain"
)

// NoteCreateRequest 创建笔记请求
// Content 与 Items 互斥，二者同时提交视为非法请求
type NoteCreateRequest struct {
	Title     string            `json:"title" form:"title"`
	Content   string            `json:"content" form:"content"`
	Items     []domain.NoteItem `json:"items" form:"items"`
	Color     string            `json:"color" form:"color"`
	IsPinned  bool              `json:"isPinned" form:"isPinned"`
	LabelIDs  []int64           `json:"labelIds" form:"labelIds"`
	SortOrder int64             `json:"sortOrder" form:"sortOrder"`
}

// NoteUpdateRequest 更新笔记请求
// 指针字段为 nil 表示不修改，与显式零值区分
type NoteUpdateRequest struct {
	Title      *string            `json:"title"`
	Content    *string            `json:"content"`
	Items      *[]domain.NoteItem `json:"items"`
	Color      *string            `json:"color"`
	IsPinned   *bool              `json:"isPinned"`
	IsArchived *bool              `json:"isArchived"`
	IsTrash    *bool              `json:"isTrash"`
	LabelIDs   *[]int64           `json:"labelIds"`
	SortOrder  *int64             `json:"sortOrder"`
}

// ToPatch 转换为领域补丁
func (r *NoteUpdateRequest) ToPatch() domain.NotePatch {
	return domain.NotePatch{
		Title:      r.Title,
		Content:    r.Content,
		Items:      r.Items,
		Color:      r.Color,
		IsPinned:   r.IsPinned,
		IsArchived: r.IsArchived,
		IsTrash:    r.IsTrash,
		LabelIDs:   r.LabelIDs,
		SortOrder:  r.SortOrder,
	}
}
