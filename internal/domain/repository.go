// Package domain 定义领域模型和接口
package domain

import "context"

// NoteFilter 列表查询过滤条件
// View 决定筛选谓词，View 为 NoteViewLabel 时 LabelID 生效
type NoteFilter struct {
	View    NoteView
	LabelID int64
}

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id, uid int64) (*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 保存笔记的完整状态
	Update(ctx context.Context, note *Note) (*Note, error)

	// UpdatePinned 更新置顶标志
	UpdatePinned(ctx context.Context, id, uid int64, pinned bool) error

	// Delete 物理删除笔记
	Delete(ctx context.Context, id, uid int64) error

	// List 按视图分页获取笔记列表
	List(ctx context.Context, uid int64, filter NoteFilter, page, pageSize int) ([]*Note, error)

	// ListCount 按视图获取笔记数量
	ListCount(ctx context.Context, uid int64, filter NoteFilter) (int64, error)
}

// LabelRepository 标签仓储接口
type LabelRepository interface {
	// GetByID 根据ID获取标签
	GetByID(ctx context.Context, id, uid int64) (*Label, error)

	// GetByIDs 根据ID列表批量获取标签
	GetByIDs(ctx context.Context, ids []int64, uid int64) ([]*Label, error)

	// Create 创建标签
	Create(ctx context.Context, label *Label) (*Label, error)

	// Delete 删除标签
	Delete(ctx context.Context, id, uid int64) error

	// ListByUID 获取用户全部标签
	ListByUID(ctx context.Context, uid int64) ([]*Label, error)
}
