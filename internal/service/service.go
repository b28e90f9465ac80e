// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/pkg/code"
	"github.com/haierkeys/keep-note-service/pkg/timex"
	"github.com/haierkeys/keep-note-service/pkg/util"

	"gorm.io/gorm"
)

// 笔记列表缓存的默认 TTL
const defaultNoteCacheTTL = time.Hour

// ServiceConfig Service 层配置
type ServiceConfig struct {
	Note NoteServiceConfig
}

// NoteServiceConfig 笔记服务配置
type NoteServiceConfig struct {
	// CacheTTL 列表缓存过期时间，支持格式：3600（秒）、1h（小时）
	CacheTTL string
}

// GetCacheTTL 解析缓存 TTL，解析失败回退默认值
func (c *NoteServiceConfig) GetCacheTTL() time.Duration {
	ttl, err := util.ParseDuration(c.CacheTTL)
	if err != nil || ttl <= 0 {
		return defaultNoteCacheTTL
	}
	return ttl
}

// LabelDTO 标签数据传输对象
type LabelDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NoteDTO 笔记数据传输对象，标签展开为完整对象
type NoteDTO struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content,omitempty"`
	Items      []domain.NoteItem `json:"items,omitempty"`
	Color      string            `json:"color"`
	IsPinned   bool              `json:"isPinned"`
	IsArchived bool              `json:"isArchived"`
	IsTrash    bool              `json:"isTrash"`
	Labels     []*LabelDTO       `json:"labels"`
	SortOrder  int64             `json:"sortOrder"`
	CreatedAt  timex.Time        `json:"createdAt"`
	UpdatedAt  timex.Time        `json:"updatedAt"`
}

// noteCacheKey 列表缓存键，格式 notes:<uid>:<view>:<page>:<pageSize>
// 页大小参与键，不同页大小的请求不会命中彼此的载荷
func noteCacheKey(uid int64, view string, page, pageSize int) string {
	return fmt.Sprintf("notes:%d:%s:%d:%d", uid, view, page, pageSize)
}

// noteCacheOwnerPrefix 用户全部列表缓存的键前缀
func noteCacheOwnerPrefix(uid int64) string {
	return fmt.Sprintf("notes:%d:", uid)
}

// viewName 视图的缓存键名，标签视图携带标签ID
func viewName(filter domain.NoteFilter) string {
	if filter.View == domain.NoteViewLabel {
		return fmt.Sprintf("label:%d", filter.LabelID)
	}
	if filter.View == "" {
		return string(domain.NoteViewAll)
	}
	return string(filter.View)
}

// wrapNoteDBError 将仓储错误映射为业务错误码
func wrapNoteDBError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return code.ErrorNoteNotFound
	}
	return code.ErrorDBQuery.WithDetails(err.Error())
}

// toNoteDTO 将领域模型转换为 DTO，标签由调用方查好后传入
func toNoteDTO(note *domain.Note, labels map[int64]*LabelDTO) *NoteDTO {
	d := &NoteDTO{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		Items:      note.Items,
		Color:      note.Color,
		IsPinned:   note.IsPinned,
		IsArchived: note.IsArchived,
		IsTrash:    note.IsTrash,
		Labels:     make([]*LabelDTO, 0, len(note.LabelIDs)),
		SortOrder:  note.SortOrder,
		CreatedAt:  timex.Time(note.CreatedAt),
		UpdatedAt:  timex.Time(note.UpdatedAt),
	}
	for _, id := range note.LabelIDs {
		if l, ok := labels[id]; ok {
			d.Labels = append(d.Labels, l)
		}
	}
	return d
}

// labelsForNotes 批量查询笔记引用的标签并建立索引
func labelsForNotes(ctx context.Context, repo domain.LabelRepository, uid int64, notes ...*domain.Note) (map[int64]*LabelDTO, error) {
	seen := map[int64]bool{}
	var ids []int64
	for _, note := range notes {
		for _, id := range note.LabelIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[int64]*LabelDTO{}, nil
	}

	labels, err := repo.GetByIDs(ctx, ids, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	out := make(map[int64]*LabelDTO, len(labels))
	for _, l := range labels {
		out[l.ID] = &LabelDTO{ID: l.ID, Name: l.Name}
	}
	return out, nil
}
