package api_router

import (
	"github.com/haierkeys/keep-note-service/internal/app"
	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/internal/dto"
	pkgapp "github.com/haierkeys/keep-note-service/pkg/app"
	"github.com/haierkeys/keep-note-service/pkg/code"
	"github.com/haierkeys/keep-note-service/pkg/convert"
	apperrors "github.com/haierkeys/keep-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// noteID 从路径参数解析笔记 ID
func noteID(c *gin.Context) int64 {
	return convert.StrTo(c.Param("id")).MustInt64()
}

// Create 创建笔记
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.Create err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteWriteService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessCreate.WithData(note))
}

// Get 获取单条笔记详情
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := noteID(c)
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.Get err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteReadService.Get(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// Update 部分更新笔记
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	id := noteID(c)
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.Update err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteWriteService.Update(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessUpdate.WithData(note))
}

// Delete 物理删除笔记
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := noteID(c)
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.Delete err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.NoteWriteService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessDelete)
}

// TogglePin 翻转置顶标志
func (h *NoteHandler) TogglePin(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := noteID(c)
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.TogglePin err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteWriteService.TogglePin(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.TogglePin", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.SuccessUpdate.WithData(note))
}

// List 获取活跃笔记列表
func (h *NoteHandler) List(c *gin.Context) {
	h.list(c, domain.NoteFilter{View: domain.NoteViewAll})
}

// ListArchived 获取归档笔记列表
func (h *NoteHandler) ListArchived(c *gin.Context) {
	h.list(c, domain.NoteFilter{View: domain.NoteViewArchived})
}

// ListTrash 获取回收站笔记列表
func (h *NoteHandler) ListTrash(c *gin.Context) {
	h.list(c, domain.NoteFilter{View: domain.NoteViewTrash})
}

// ListByLabel 获取指定标签的笔记列表
func (h *NoteHandler) ListByLabel(c *gin.Context) {
	labelID := convert.StrTo(c.Param("labelId")).MustInt64()
	if labelID <= 0 {
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams)
		return
	}
	h.list(c, domain.NoteFilter{View: domain.NoteViewLabel, LabelID: labelID})
}

// list 列表请求的公共处理流程
func (h *NoteHandler) list(c *gin.Context, filter domain.NoteFilter) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.list err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSize(c)

	list, totalRows, err := h.App.NoteReadService.List(ctx, uid, filter, page, pageSize)
	if err != nil {
		h.logError(ctx, "NoteHandler.list", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponseList(code.Success, list, totalRows)
}
