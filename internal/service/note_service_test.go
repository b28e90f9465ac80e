package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/keep-note-service/internal/cache"
	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/internal/dto"
	"github.com/haierkeys/keep-note-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeNoteRepository 内存实现，统计查询次数用于验证缓存行为
type fakeNoteRepository struct {
	mu        sync.Mutex
	notes     map[int64]*domain.Note
	nextID    int64
	listCalls int
}

func newFakeNoteRepository() *fakeNoteRepository {
	return &fakeNoteRepository{
		notes:  map[int64]*domain.Note{},
		nextID: 1,
	}
}

func (r *fakeNoteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *fakeNoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *note
	clone.ID = r.nextID
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.nextID++
	r.notes[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeNoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.notes[note.ID]
	if !ok || existing.UID != note.UID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *note
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	r.notes[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeNoteRepository) UpdatePinned(ctx context.Context, id, uid int64, pinned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UID != uid {
		return gorm.ErrRecordNotFound
	}
	n.IsPinned = pinned
	return nil
}

func (r *fakeNoteRepository) Delete(ctx context.Context, id, uid int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UID != uid {
		return gorm.ErrRecordNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepository) match(n *domain.Note, uid int64, filter domain.NoteFilter) bool {
	if n.UID != uid {
		return false
	}
	switch filter.View {
	case domain.NoteViewArchived:
		return n.IsArchived && !n.IsTrash
	case domain.NoteViewTrash:
		return n.IsTrash
	case domain.NoteViewLabel:
		return !n.IsTrash && n.HasLabel(filter.LabelID)
	default:
		return !n.IsTrash && !n.IsArchived
	}
}

func (r *fakeNoteRepository) List(ctx context.Context, uid int64, filter domain.NoteFilter, page, pageSize int) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++

	var matched []*domain.Note
	for _, n := range r.notes {
		if r.match(n, uid, filter) {
			clone := *n
			matched = append(matched, &clone)
		}
	}
	pinFirst := filter.View != domain.NoteViewArchived && filter.View != domain.NoteViewTrash
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if pinFirst && a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	offset := (page - 1) * pageSize
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *fakeNoteRepository) ListCount(ctx context.Context, uid int64, filter domain.NoteFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notes {
		if r.match(n, uid, filter) {
			count++
		}
	}
	return count, nil
}

// fakeLabelRepository 内存标签仓储
type fakeLabelRepository struct {
	labels map[int64]*domain.Label
}

func newFakeLabelRepository(labels ...*domain.Label) *fakeLabelRepository {
	r := &fakeLabelRepository{labels: map[int64]*domain.Label{}}
	for _, l := range labels {
		r.labels[l.ID] = l
	}
	return r
}

func (r *fakeLabelRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Label, error) {
	l, ok := r.labels[id]
	if !ok || l.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *fakeLabelRepository) GetByIDs(ctx context.Context, ids []int64, uid int64) ([]*domain.Label, error) {
	var out []*domain.Label
	for _, id := range ids {
		if l, ok := r.labels[id]; ok && l.UID == uid {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLabelRepository) Create(ctx context.Context, label *domain.Label) (*domain.Label, error) {
	r.labels[label.ID] = label
	return label, nil
}

func (r *fakeLabelRepository) Delete(ctx context.Context, id, uid int64) error {
	delete(r.labels, id)
	return nil
}

func (r *fakeLabelRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Label, error) {
	var out []*domain.Label
	for _, l := range r.labels {
		if l.UID == uid {
			out = append(out, l)
		}
	}
	return out, nil
}

// failingStore 所有操作都失败的缓存存储，用于验证降级
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("cache down")
}
func (failingStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return errors.New("cache down")
}
func (failingStore) Delete(ctx context.Context, keys ...string) error {
	return errors.New("cache down")
}
func (failingStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	return errors.New("cache down")
}
func (failingStore) Close() error { return nil }

type serviceFixture struct {
	noteRepo  *fakeNoteRepository
	labelRepo *fakeLabelRepository
	store     cache.Store
	read      NoteReadService
	write     NoteWriteService
}

func newServiceFixture(store cache.Store, labels ...*domain.Label) *serviceFixture {
	noteRepo := newFakeNoteRepository()
	labelRepo := newFakeLabelRepository(labels...)
	logger := zap.NewNop()
	config := &ServiceConfig{}

	return &serviceFixture{
		noteRepo:  noteRepo,
		labelRepo: labelRepo,
		store:     store,
		read:      NewNoteReadService(noteRepo, labelRepo, store, logger, config),
		write:     NewNoteWriteService(noteRepo, labelRepo, store, logger),
	}
}

func TestNoteReadService_CacheCoherence(t *testing.T) {
	f := newServiceFixture(cache.NewMemoryStore())
	ctx := context.Background()

	_, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "A"})
	require.NoError(t, err)

	first, total1, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	callsAfterFirst := f.noteRepo.listCalls

	second, total2, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)

	// 第二次命中缓存，仓储不再被查询，结果一致
	assert.Equal(t, callsAfterFirst, f.noteRepo.listCalls)
	assert.Equal(t, total1, total2)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Title, second[i].Title)
	}
}

func TestNoteReadService_PageSizeIsolatedInCache(t *testing.T) {
	f := newServiceFixture(cache.NewMemoryStore())
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: title})
		require.NoError(t, err)
	}

	big, total, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, big, 3)

	// 页大小不同的请求不得命中上一次的缓存载荷
	small, total, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, small, 2)
}

func TestNoteReadService_CacheOutageDegradesToRepository(t *testing.T) {
	f := newServiceFixture(failingStore{})
	ctx := context.Background()

	_, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "A"})
	require.NoError(t, err)

	list, total, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Title)
}

func TestNoteReadService_Get(t *testing.T) {
	label := &domain.Label{ID: 7, UID: 1, Name: "work"}
	f := newServiceFixture(cache.NewMemoryStore(), label)
	ctx := context.Background()

	created, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{
		Title:    "A",
		LabelIDs: []int64{7},
	})
	require.NoError(t, err)

	got, err := f.read.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	require.Len(t, got.Labels, 1)
	assert.Equal(t, "work", got.Labels[0].Name)

	_, err = f.read.Get(ctx, 1, 9999)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteWriteService_ArchiveMovesAcrossViews(t *testing.T) {
	f := newServiceFixture(cache.NewMemoryStore())
	ctx := context.Background()

	created, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "A"})
	require.NoError(t, err)

	all, _, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// 归档后：all 视图不再包含，archived 视图包含且颜色为归档色
	_, err = f.write.Update(ctx, 1, created.ID, &dto.NoteUpdateRequest{
		IsArchived: boolPtr(true),
	})
	require.NoError(t, err)

	all, _, err = f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all, 0)

	archived, _, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewArchived}, 1, 20)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, domain.ColorArchive, archived[0].Color)
}

func TestNoteWriteService_TrashOverridesArchived(t *testing.T) {
	f := newServiceFixture(cache.NewMemoryStore())
	ctx := context.Background()

	created, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "A"})
	require.NoError(t, err)

	_, err = f.write.Update(ctx, 1, created.ID, &dto.NoteUpdateRequest{
		IsArchived: boolPtr(true),
	})
	require.NoError(t, err)

	updated, err := f.write.Update(ctx, 1, created.ID, &dto.NoteUpdateRequest{
		IsTrash: boolPtr(true),
	})
	require.NoError(t, err)

	assert.True(t, updated.IsTrash)
	assert.False(t, updated.IsArchived)
	assert.Equal(t, domain.ColorTrash, updated.Color)

	// all 与 archived 视图都不再包含，trash 视图包含
	all, _, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all, 0)

	trash, _, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewTrash}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, trash, 1)
}

func TestNoteWriteService_MutationInvalidatesCache(t *testing.T) {
	f := newServiceFixture(cache.NewMemoryStore())
	ctx := context.Background()

	_, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "A"})
	require.NoError(t, err)

	// 预热缓存
	_, _, err = f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)

	// 新建笔记后，下一次读取必须反映新状态
	_, err = f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "B"})
	require.NoError(t, err)

	list, total, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, list, 2)
}

func TestNoteWriteService_TogglePinIdempotentPair(t *testing.T) {
	f := newServiceFixture(cache.NewMemoryStore())
	ctx := context.Background()

	created, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "A"})
	require.NoError(t, err)
	assert.False(t, created.IsPinned)

	once, err := f.write.TogglePin(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.True(t, once.IsPinned)
	assert.Equal(t, created.Color, once.Color)

	twice, err := f.write.TogglePin(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.False(t, twice.IsPinned)
}

func TestNoteWriteService_DeleteNotFoundSkipsInvalidation(t *testing.T) {
	store := cache.NewMemoryStore()
	f := newServiceFixture(store)
	ctx := context.Background()

	_, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "A"})
	require.NoError(t, err)

	// 预热缓存
	_, _, err = f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)

	err = f.write.Delete(ctx, 1, 9999)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	// 删除失败不触发失效，缓存条目仍在
	_, err = store.Get(ctx, noteCacheKey(1, "all", 1, 20))
	assert.NoError(t, err)
}

func TestNoteWriteService_BodyExclusive(t *testing.T) {
	f := newServiceFixture(cache.NewMemoryStore())
	ctx := context.Background()

	_, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{
		Title:   "A",
		Content: "text",
		Items:   []domain.NoteItem{{Text: "one"}},
	})
	assert.ErrorIs(t, err, code.ErrorNoteBodyDouble)

	created, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "A", Content: "text"})
	require.NoError(t, err)

	content := "x"
	items := []domain.NoteItem{{Text: "one"}}
	_, err = f.write.Update(ctx, 1, created.ID, &dto.NoteUpdateRequest{
		Content: &content,
		Items:   &items,
	})
	assert.ErrorIs(t, err, code.ErrorNoteBodyDouble)
}

func TestNoteWriteService_LabelOwnership(t *testing.T) {
	ownLabel := &domain.Label{ID: 1, UID: 1, Name: "mine"}
	otherLabel := &domain.Label{ID: 2, UID: 2, Name: "theirs"}
	f := newServiceFixture(cache.NewMemoryStore(), ownLabel, otherLabel)
	ctx := context.Background()

	_, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{
		Title:    "A",
		LabelIDs: []int64{2},
	})
	assert.ErrorIs(t, err, code.ErrorLabelNotFound)

	created, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{
		Title:    "A",
		LabelIDs: []int64{1},
	})
	require.NoError(t, err)
	require.Len(t, created.Labels, 1)
	assert.Equal(t, "mine", created.Labels[0].Name)
}

func TestNoteReadService_LabelView(t *testing.T) {
	label := &domain.Label{ID: 5, UID: 1, Name: "todo"}
	f := newServiceFixture(cache.NewMemoryStore(), label)
	ctx := context.Background()

	_, err := f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "tagged", LabelIDs: []int64{5}})
	require.NoError(t, err)
	_, err = f.write.Create(ctx, 1, &dto.NoteCreateRequest{Title: "untagged"})
	require.NoError(t, err)

	list, total, err := f.read.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewLabel, LabelID: 5}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "tagged", list[0].Title)
	require.Len(t, list[0].Labels, 1)
	assert.Equal(t, "todo", list[0].Labels[0].Name)
}
