// Package dao 实现数据访问层
package dao

import (
	"context"
	"strconv"
	"time"

	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/internal/model"
	"github.com/haierkeys/keep-note-service/pkg/app"
	"github.com/haierkeys/keep-note-service/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:         m.ID,
		UID:        m.UID,
		Title:      m.Title,
		Content:    m.Content,
		Items:      m.Items,
		Color:      m.Color,
		IsPinned:   m.IsPinned == 1,
		IsArchived: m.IsArchived == 1,
		IsTrash:    m.IsTrash == 1,
		LabelIDs:   m.LabelIDs,
		SortOrder:  m.SortOrder,
		CreatedAt:  time.Time(m.CreatedAt),
		UpdatedAt:  time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	m := &model.Note{
		ID:        note.ID,
		UID:       note.UID,
		Title:     note.Title,
		Content:   note.Content,
		Items:     note.Items,
		Color:     note.Color,
		LabelIDs:  note.LabelIDs,
		SortOrder: note.SortOrder,
		CreatedAt: timex.Time(note.CreatedAt),
		UpdatedAt: timex.Time(note.UpdatedAt),
	}
	if note.IsPinned {
		m.IsPinned = 1
	}
	if note.IsArchived {
		m.IsArchived = 1
	}
	if note.IsTrash {
		m.IsTrash = 1
	}
	return m
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)

	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	err := r.dao.db.WithContext(ctx).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 保存笔记的完整状态
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)

	m.UpdatedAt = timex.Now()

	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", m.ID, m.UID).
		Select("title", "content", "items", "color", "is_pinned", "is_archived", "is_trash", "label_ids", "sort_order", "updated_at").
		Updates(m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdatePinned 更新置顶标志
func (r *noteRepository) UpdatePinned(ctx context.Context, id, uid int64, pinned bool) error {
	pinnedValue := 0
	if pinned {
		pinnedValue = 1
	}
	result := r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(map[string]interface{}{
			"is_pinned":  pinnedValue,
			"updated_at": timex.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 物理删除笔记
func (r *noteRepository) Delete(ctx context.Context, id, uid int64) error {
	result := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List 按视图分页获取笔记列表
func (r *noteRepository) List(ctx context.Context, uid int64, filter domain.NoteFilter, page, pageSize int) ([]*domain.Note, error) {
	var ms []*model.Note

	q := r.viewQuery(ctx, uid, filter).
		Order(r.viewOrder(filter.View)).
		Offset(app.GetPageOffset(page, pageSize)).
		Limit(pageSize)

	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// ListCount 按视图获取笔记数量
func (r *noteRepository) ListCount(ctx context.Context, uid int64, filter domain.NoteFilter) (int64, error) {
	var count int64
	err := r.viewQuery(ctx, uid, filter).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// viewQuery 构造视图对应的筛选查询
func (r *noteRepository) viewQuery(ctx context.Context, uid int64, filter domain.NoteFilter) *gorm.DB {
	q := r.dao.db.WithContext(ctx).Model(&model.Note{}).Where("uid = ?", uid)

	switch filter.View {
	case domain.NoteViewArchived:
		q = q.Where("is_archived = ? AND is_trash = ?", 1, 0)
	case domain.NoteViewTrash:
		q = q.Where("is_trash = ?", 1)
	case domain.NoteViewLabel:
		q = q.Where("is_trash = ?", 0)
		q = q.Where(labelMemberCondition(r.dao.db, filter.LabelID))
	default:
		// 主列表只含活跃笔记，归档和回收站各有专属视图
		q = q.Where("is_archived = ? AND is_trash = ?", 0, 0)
	}
	return q
}

// viewOrder 视图对应的排序规则
// 归档和回收站视图不参与置顶排序
func (r *noteRepository) viewOrder(view domain.NoteView) string {
	switch view {
	case domain.NoteViewArchived, domain.NoteViewTrash:
		return "created_at DESC, id DESC"
	default:
		return "is_pinned DESC, created_at DESC, id DESC"
	}
}

// labelMemberCondition 标签成员判定条件
// label_ids 以 JSON 数组文本存储，按元素边界匹配，避免 1 误匹配 12
func labelMemberCondition(db *gorm.DB, labelID int64) *gorm.DB {
	s := strconv.FormatInt(labelID, 10)
	return db.Where("label_ids LIKE ?", "["+s+"]").
		Or("label_ids LIKE ?", "["+s+",%").
		Or("label_ids LIKE ?", "%,"+s+"]").
		Or("label_ids LIKE ?", "%,"+s+",%")
}
