package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldLabelID 标签 ID 字段
	FieldLabelID = "labelId"

	// FieldView 列表视图字段
	FieldView = "view"

	// FieldPage 页码字段
	FieldPage = "page"

	// FieldCacheKey 缓存键字段
	FieldCacheKey = "cacheKey"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"
)
