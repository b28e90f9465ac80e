package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/haierkeys/keep-note-service/internal/cache"
	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// NoteReadService 定义笔记读取服务接口
type NoteReadService interface {
	// List 按视图分页获取笔记列表，走旁路缓存
	List(ctx context.Context, uid int64, filter domain.NoteFilter, page, pageSize int) ([]*NoteDTO, int, error)

	// Get 获取单条笔记，始终直读仓储，不经过缓存
	Get(ctx context.Context, uid, id int64) (*NoteDTO, error)
}

// cachedNotePage 缓存中的列表页载荷
type cachedNotePage struct {
	List      []*NoteDTO `json:"list"`
	TotalRows int        `json:"totalRows"`
}

// noteReadService 实现 NoteReadService 接口
type noteReadService struct {
	noteRepo  domain.NoteRepository
	labelRepo domain.LabelRepository
	store     cache.Store
	logger    *zap.Logger
	sf        *singleflight.Group
	config    *ServiceConfig
}

// NewNoteReadService 创建 NoteReadService 实例
func NewNoteReadService(noteRepo domain.NoteRepository, labelRepo domain.LabelRepository, store cache.Store, logger *zap.Logger, config *ServiceConfig) NoteReadService {
	return &noteReadService{
		noteRepo:  noteRepo,
		labelRepo: labelRepo,
		store:     store,
		logger:    logger,
		sf:        &singleflight.Group{},
		config:    config,
	}
}

// List 按视图分页获取笔记列表
// 缓存命中直接返回，未命中回源查库并回填
// 缓存读写失败一律降级为直接查库，不影响请求结果
func (s *noteReadService) List(ctx context.Context, uid int64, filter domain.NoteFilter, page, pageSize int) ([]*NoteDTO, int, error) {
	view := viewName(filter)
	key := noteCacheKey(uid, view, page, pageSize)

	if value, err := s.store.Get(ctx, key); err == nil {
		var cached cachedNotePage
		if jsonErr := json.Unmarshal([]byte(value), &cached); jsonErr == nil {
			cacheHitTotal.WithLabelValues(view).Inc()
			return cached.List, cached.TotalRows, nil
		}
		// 载荷损坏按未命中处理，回源后覆盖
		s.logger.Warn("note cache payload corrupted",
			zap.String(logger.FieldCacheKey, key))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("note cache get failed, fallback to repository",
			zap.String(logger.FieldCacheKey, key),
			zap.Error(err))
	}

	cacheMissTotal.WithLabelValues(view).Inc()

	// 并发未命中只放一个请求回源
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.fetchPage(ctx, uid, filter, page, pageSize, key)
	})
	if err != nil {
		return nil, 0, err
	}

	result := v.(*cachedNotePage)
	return result.List, result.TotalRows, nil
}

// fetchPage 回源查库并回填缓存
func (s *noteReadService) fetchPage(ctx context.Context, uid int64, filter domain.NoteFilter, page, pageSize int, key string) (*cachedNotePage, error) {
	notes, err := s.noteRepo.List(ctx, uid, filter, page, pageSize)
	if err != nil {
		return nil, wrapNoteDBError(err)
	}
	count, err := s.noteRepo.ListCount(ctx, uid, filter)
	if err != nil {
		return nil, wrapNoteDBError(err)
	}

	labels, err := labelsForNotes(ctx, s.labelRepo, uid, notes...)
	if err != nil {
		return nil, err
	}

	result := &cachedNotePage{
		List:      make([]*NoteDTO, 0, len(notes)),
		TotalRows: int(count),
	}
	for _, note := range notes {
		result.List = append(result.List, toNoteDTO(note, labels))
	}

	if payload, jsonErr := json.Marshal(result); jsonErr == nil {
		if setErr := s.store.Set(ctx, key, string(payload), s.config.Note.GetCacheTTL()); setErr != nil {
			s.logger.Warn("note cache set failed",
				zap.String(logger.FieldCacheKey, key),
				zap.Error(setErr))
		}
	}

	return result, nil
}

// Get 获取单条笔记
// 点查不缓存，避免为失效再维护一套按笔记的键
func (s *noteReadService) Get(ctx context.Context, uid, id int64) (*NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, wrapNoteDBError(err)
	}

	labels, err := labelsForNotes(ctx, s.labelRepo, uid, note)
	if err != nil {
		return nil, err
	}
	return toNoteDTO(note, labels), nil
}

var _ NoteReadService = (*noteReadService)(nil)
