package service

import (
	"strings"

	"github.com/haierkeys/keep-note-service/internal/domain"
)

// Reconcile 将部分更新请求合并到现有笔记，得到一份完全一致的最终状态
// 纯函数，不修改入参，永不失败，未识别的颜色值原样保留
//
// 规则按固定顺序执行，后面的规则覆盖前面的赋值：
//  1. 请求中定义的字段覆盖现有字段，未定义的字段保持不变
//  2. 请求定义了保留颜色时，由颜色推导生命周期标志
//  3. 请求显式定义了生命周期标志时，由标志反推颜色，并压制与之冲突的另一个标志
//
// 规则 3 晚于规则 2，同一请求里显式的标志变更总是胜过颜色推导
// 多个标志同时出现时，按 isTrash=true、isArchived=true、isArchived=false、
// isTrash=false 的文档顺序执行，最后一次颜色赋值生效
func Reconcile(existing *domain.Note, patch domain.NotePatch) domain.Note {
	note := *existing
	note.Items = cloneItems(existing.Items)
	note.LabelIDs = cloneInt64s(existing.LabelIDs)

	// 规则 1：复制请求中定义的字段
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
		note.Items = nil
	}
	if patch.Items != nil {
		note.Items = cloneItems(*patch.Items)
		note.Content = ""
	}
	if patch.Color != nil {
		note.Color = *patch.Color
	}
	if patch.IsPinned != nil {
		note.IsPinned = *patch.IsPinned
	}
	if patch.IsArchived != nil {
		note.IsArchived = *patch.IsArchived
	}
	if patch.IsTrash != nil {
		note.IsTrash = *patch.IsTrash
	}
	if patch.LabelIDs != nil {
		note.LabelIDs = cloneInt64s(*patch.LabelIDs)
	}
	if patch.SortOrder != nil {
		note.SortOrder = *patch.SortOrder
	}

	// 规则 2：保留颜色推导标志
	if patch.Color != nil {
		switch strings.ToLower(*patch.Color) {
		case domain.ColorArchive:
			note.IsArchived = true
			note.IsTrash = false
		case domain.ColorTrash:
			note.IsTrash = true
			note.IsArchived = false
		}
	}

	// 规则 3：显式标志反推颜色，胜过颜色推导
	// 每个分支都重申自身标志，防止被规则 2 或前一个分支清掉
	if patch.IsTrash != nil && *patch.IsTrash {
		note.IsTrash = true
		note.IsArchived = false
		note.Color = domain.ColorTrash
	}
	if patch.IsArchived != nil && *patch.IsArchived {
		note.IsArchived = true
		note.IsTrash = false
		note.Color = domain.ColorArchive
	}
	if patch.IsArchived != nil && !*patch.IsArchived {
		note.IsArchived = false
		note.Color = domain.ColorDefault
	}
	if patch.IsTrash != nil && !*patch.IsTrash {
		note.IsTrash = false
		note.Color = domain.ColorDefault
	}

	return note
}

func cloneItems(items []domain.NoteItem) []domain.NoteItem {
	if items == nil {
		return nil
	}
	out := make([]domain.NoteItem, len(items))
	copy(out, items)
	return out
}

func cloneInt64s(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}
