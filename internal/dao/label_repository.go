package dao

import (
	"context"
	"time"

	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/internal/model"
	"github.com/haierkeys/keep-note-service/pkg/timex"

	"gorm.io/gorm"
)

// labelRepository 实现 domain.LabelRepository 接口
type labelRepository struct {
	dao *Dao
}

// NewLabelRepository 创建 LabelRepository 实例
func NewLabelRepository(dao *Dao) domain.LabelRepository {
	return &labelRepository{dao: dao}
}

func (r *labelRepository) toDomain(m *model.Label) *domain.Label {
	if m == nil {
		return nil
	}
	return &domain.Label{
		ID:        m.ID,
		UID:       m.UID,
		Name:      m.Name,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取标签
func (r *labelRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Label, error) {
	var m model.Label
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByIDs 根据ID列表批量获取标签
func (r *labelRepository) GetByIDs(ctx context.Context, ids []int64, uid int64) ([]*domain.Label, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []*model.Label
	err := r.dao.db.WithContext(ctx).
		Where("id IN ? AND uid = ?", ids, uid).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	labels := make([]*domain.Label, 0, len(ms))
	for _, m := range ms {
		labels = append(labels, r.toDomain(m))
	}
	return labels, nil
}

// Create 创建标签
func (r *labelRepository) Create(ctx context.Context, label *domain.Label) (*domain.Label, error) {
	m := &model.Label{
		UID:       label.UID,
		Name:      label.Name,
		CreatedAt: timex.Now(),
	}
	err := r.dao.db.WithContext(ctx).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除标签
func (r *labelRepository) Delete(ctx context.Context, id, uid int64) error {
	result := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Label{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByUID 获取用户全部标签
func (r *labelRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Label, error) {
	var ms []*model.Label
	err := r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	labels := make([]*domain.Label, 0, len(ms))
	for _, m := range ms {
		labels = append(labels, r.toDomain(m))
	}
	return labels, nil
}
