package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/internal/model"
	"github.com/haierkeys/keep-note-service/pkg/timex"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// setupTestDao 创建内存数据库并完成迁移
func setupTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	require.NoError(t, model.AutoMigrate(db, "Note"))
	require.NoError(t, model.AutoMigrate(db, "Label"))

	return New(db, context.Background())
}

func newTestNote(uid int64, title string) *domain.Note {
	return &domain.Note{
		UID:     uid,
		Title:   title,
		Content: "content of " + title,
		Color:   domain.ColorDefault,
	}
}

func TestNoteRepository_CreateAndGet(t *testing.T) {
	d := setupTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestNote(1, "hello"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, "content of hello", got.Content)
	assert.Equal(t, domain.ColorDefault, got.Color)
	assert.False(t, got.IsPinned)
	assert.False(t, got.CreatedAt.IsZero())

	// 其他用户不可见
	_, err = repo.GetByID(ctx, created.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepository_CreateListNote(t *testing.T) {
	d := setupTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note := &domain.Note{
		UID:   1,
		Title: "groceries",
		Color: domain.ColorDefault,
		Items: []domain.NoteItem{
			{Text: "milk", Checked: false},
			{Text: "eggs", Checked: true},
		},
		LabelIDs: []int64{3, 7},
	}

	created, err := repo.Create(ctx, note)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "milk", got.Items[0].Text)
	assert.True(t, got.Items[1].Checked)
	assert.Equal(t, []int64{3, 7}, got.LabelIDs)
}

func TestNoteRepository_Update(t *testing.T) {
	d := setupTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestNote(1, "before"))
	require.NoError(t, err)

	created.Title = "after"
	created.Color = domain.ColorArchive
	created.IsArchived = true
	_, err = repo.Update(ctx, created)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, domain.ColorArchive, got.Color)
	assert.True(t, got.IsArchived)

	// 布尔标志回退到 false 也要落库
	got.IsArchived = false
	got.Color = domain.ColorDefault
	_, err = repo.Update(ctx, got)
	require.NoError(t, err)

	got2, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.False(t, got2.IsArchived)
	assert.Equal(t, domain.ColorDefault, got2.Color)
}

func TestNoteRepository_UpdatePinned(t *testing.T) {
	d := setupTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestNote(1, "pin me"))
	require.NoError(t, err)

	require.NoError(t, repo.UpdatePinned(ctx, created.ID, 1, true))

	got, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.True(t, got.IsPinned)

	// 不存在的记录返回 ErrRecordNotFound
	err = repo.UpdatePinned(ctx, 99999, 1, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepository_Delete(t *testing.T) {
	d := setupTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestNote(1, "bye"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID, 1))

	_, err = repo.GetByID(ctx, created.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, created.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepository_ListViews(t *testing.T) {
	d := setupTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	// 普通 2 条，归档 1 条，回收站 1 条
	_, err := repo.Create(ctx, newTestNote(1, "normal-1"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newTestNote(1, "normal-2"))
	require.NoError(t, err)

	archived := newTestNote(1, "archived-1")
	archived.IsArchived = true
	archived.Color = domain.ColorArchive
	_, err = repo.Create(ctx, archived)
	require.NoError(t, err)

	trashed := newTestNote(1, "trashed-1")
	trashed.IsTrash = true
	trashed.Color = domain.ColorTrash
	_, err = repo.Create(ctx, trashed)
	require.NoError(t, err)

	// all 视图：只含活跃笔记
	all, err := repo.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, n := range all {
		assert.False(t, n.IsTrash)
		assert.False(t, n.IsArchived)
	}

	// archived 视图
	archivedList, err := repo.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewArchived}, 1, 20)
	require.NoError(t, err)
	require.Len(t, archivedList, 1)
	assert.Equal(t, "archived-1", archivedList[0].Title)

	// trash 视图
	trashList, err := repo.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewTrash}, 1, 20)
	require.NoError(t, err)
	require.Len(t, trashList, 1)
	assert.Equal(t, "trashed-1", trashList[0].Title)

	count, err := repo.ListCount(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestNoteRepository_ListLabelView(t *testing.T) {
	d := setupTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	n1 := newTestNote(1, "with-label-1")
	n1.LabelIDs = []int64{1, 12}
	_, err := repo.Create(ctx, n1)
	require.NoError(t, err)

	n2 := newTestNote(1, "with-label-12")
	n2.LabelIDs = []int64{12}
	_, err = repo.Create(ctx, n2)
	require.NoError(t, err)

	n3 := newTestNote(1, "trashed-with-label-1")
	n3.LabelIDs = []int64{1}
	n3.IsTrash = true
	_, err = repo.Create(ctx, n3)
	require.NoError(t, err)

	// 标签 1：只命中 n1，不命中含 12 的 n2，排除回收站中的 n3
	list, err := repo.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewLabel, LabelID: 1}, 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "with-label-1", list[0].Title)

	// 标签 12：命中 n1 和 n2
	list, err = repo.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewLabel, LabelID: 12}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestNoteRepository_ListOrdering(t *testing.T) {
	d := setupTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// 直接写入不同 created_at 的数据，验证排序
	rows := []struct {
		title     string
		pinned    int
		createdAt time.Time
	}{
		{"old-pinned", 1, base},
		{"new-unpinned", 0, base.Add(2 * time.Hour)},
		{"old-unpinned", 0, base.Add(1 * time.Hour)},
	}
	for _, row := range rows {
		m := &model.Note{
			UID:       1,
			Title:     row.title,
			Color:     domain.ColorDefault,
			IsPinned:  row.pinned,
			CreatedAt: timex.Time(row.createdAt),
			UpdatedAt: timex.Time(row.createdAt),
		}
		require.NoError(t, d.DB().Create(m).Error)
	}

	list, err := repo.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// 置顶优先，其余按创建时间倒序
	assert.Equal(t, "old-pinned", list[0].Title)
	assert.Equal(t, "new-unpinned", list[1].Title)
	assert.Equal(t, "old-unpinned", list[2].Title)
}

func TestNoteRepository_ListPagination(t *testing.T) {
	d := setupTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := repo.Create(ctx, newTestNote(1, fmt.Sprintf("note-%02d", i)))
		require.NoError(t, err)
	}

	page1, err := repo.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, page1, 20)

	page2, err := repo.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 2, 20)
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	page3, err := repo.List(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll}, 3, 20)
	require.NoError(t, err)
	assert.Len(t, page3, 0)

	count, err := repo.ListCount(ctx, 1, domain.NoteFilter{View: domain.NoteViewAll})
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
}

func TestLabelRepository_CRUD(t *testing.T) {
	d := setupTestDao(t)
	repo := NewLabelRepository(d)
	ctx := context.Background()

	l1, err := repo.Create(ctx, &domain.Label{UID: 1, Name: "work"})
	require.NoError(t, err)
	l2, err := repo.Create(ctx, &domain.Label{UID: 1, Name: "home"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Label{UID: 2, Name: "other-user"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, l1.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "work", got.Name)

	labels, err := repo.GetByIDs(ctx, []int64{l1.ID, l2.ID, 9999}, 1)
	require.NoError(t, err)
	assert.Len(t, labels, 2)

	all, err := repo.ListByUID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, l1.ID, 1))
	_, err = repo.GetByID(ctx, l1.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
