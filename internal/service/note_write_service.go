package service

import (
	"context"
	"errors"

	"github.com/haierkeys/keep-note-service/internal/cache"
	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/internal/dto"
	"github.com/haierkeys/keep-note-service/pkg/code"
	"github.com/haierkeys/keep-note-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteWriteService 定义笔记写入服务接口
// 每个变更操作在落库成功后使该用户的全部列表缓存失效
type NoteWriteService interface {
	// Create 创建笔记
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*NoteDTO, error)

	// Update 部分更新笔记，经过状态调和
	Update(ctx context.Context, uid, id int64, params *dto.NoteUpdateRequest) (*NoteDTO, error)

	// Delete 物理删除笔记
	Delete(ctx context.Context, uid, id int64) error

	// TogglePin 翻转置顶标志
	TogglePin(ctx context.Context, uid, id int64) (*NoteDTO, error)
}

// noteWriteService 实现 NoteWriteService 接口
type noteWriteService struct {
	noteRepo  domain.NoteRepository
	labelRepo domain.LabelRepository
	store     cache.Store
	logger    *zap.Logger
}

// NewNoteWriteService 创建 NoteWriteService 实例
func NewNoteWriteService(noteRepo domain.NoteRepository, labelRepo domain.LabelRepository, store cache.Store, logger *zap.Logger) NoteWriteService {
	return &noteWriteService{
		noteRepo:  noteRepo,
		labelRepo: labelRepo,
		store:     store,
		logger:    logger,
	}
}

// Create 创建笔记
// 初始生命周期标志全部为 false，颜色缺省为默认色
func (s *noteWriteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*NoteDTO, error) {
	if params.Content != "" && len(params.Items) > 0 {
		return nil, code.ErrorNoteBodyDouble
	}

	if err := s.checkLabels(ctx, uid, params.LabelIDs); err != nil {
		return nil, err
	}

	note := &domain.Note{
		UID:       uid,
		Title:     params.Title,
		Content:   params.Content,
		Items:     params.Items,
		Color:     params.Color,
		IsPinned:  params.IsPinned,
		LabelIDs:  params.LabelIDs,
		SortOrder: params.SortOrder,
	}
	if note.Color == "" {
		note.Color = domain.ColorDefault
	}

	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, wrapNoteDBError(err)
	}

	// 新笔记可能出现在任意视图的第一页
	s.invalidateOwnerCache(ctx, uid)

	return s.toDTO(ctx, uid, created)
}

// Update 部分更新笔记
// 先取现状，经状态调和得到最终一致状态后整体落库
func (s *noteWriteService) Update(ctx context.Context, uid, id int64, params *dto.NoteUpdateRequest) (*NoteDTO, error) {
	if params.Content != nil && params.Items != nil {
		return nil, code.ErrorNoteBodyDouble
	}

	existing, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, wrapNoteDBError(err)
	}

	if params.LabelIDs != nil {
		if err := s.checkLabels(ctx, uid, *params.LabelIDs); err != nil {
			return nil, err
		}
	}

	final := Reconcile(existing, params.ToPatch())

	updated, err := s.noteRepo.Update(ctx, &final)
	if err != nil {
		return nil, wrapNoteDBError(err)
	}

	s.invalidateOwnerCache(ctx, uid)

	return s.toDTO(ctx, uid, updated)
}

// Delete 物理删除笔记
// 记录不存在时不触发缓存失效
func (s *noteWriteService) Delete(ctx context.Context, uid, id int64) error {
	if err := s.noteRepo.Delete(ctx, id, uid); err != nil {
		return wrapNoteDBError(err)
	}

	s.invalidateOwnerCache(ctx, uid)
	return nil
}

// TogglePin 翻转置顶标志
// 置顶不参与状态调和，不影响颜色
func (s *noteWriteService) TogglePin(ctx context.Context, uid, id int64) (*NoteDTO, error) {
	existing, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, wrapNoteDBError(err)
	}

	if err := s.noteRepo.UpdatePinned(ctx, id, uid, !existing.IsPinned); err != nil {
		return nil, wrapNoteDBError(err)
	}
	existing.IsPinned = !existing.IsPinned

	s.invalidateOwnerCache(ctx, uid)

	return s.toDTO(ctx, uid, existing)
}

// checkLabels 校验标签引用只指向本人拥有的标签
func (s *noteWriteService) checkLabels(ctx context.Context, uid int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	labels, err := s.labelRepo.GetByIDs(ctx, ids, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorLabelNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	owned := map[int64]bool{}
	for _, l := range labels {
		owned[l.ID] = true
	}
	for _, id := range ids {
		if !owned[id] {
			return code.ErrorLabelNotFound
		}
	}
	return nil
}

// invalidateOwnerCache 失效该用户的全部列表缓存
// 任何变更都可能改变任意视图任意页的归属，因此按用户前缀整体清除
// 失效失败只记日志不回滚，脏窗口由 TTL 兜底
func (s *noteWriteService) invalidateOwnerCache(ctx context.Context, uid int64) {
	prefix := noteCacheOwnerPrefix(uid)
	if err := s.store.DeleteByPrefix(ctx, prefix); err != nil {
		s.logger.Warn("note cache invalidation failed",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldCacheKey, prefix),
			zap.Error(err))
		return
	}
	cacheInvalidateTotal.Inc()
}

// toDTO 展开标签并转换为 DTO
func (s *noteWriteService) toDTO(ctx context.Context, uid int64, note *domain.Note) (*NoteDTO, error) {
	labels, err := labelsForNotes(ctx, s.labelRepo, uid, note)
	if err != nil {
		return nil, err
	}
	return toNoteDTO(note, labels), nil
}

var _ NoteWriteService = (*noteWriteService)(nil)
