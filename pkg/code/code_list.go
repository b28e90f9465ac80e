package code

// 成功码
var (
	Success       = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate = NewSuss(1, lang{en: "Created successfully", zh_cn: "创建成功"})
	SuccessUpdate = NewSuss(2, lang{en: "Updated successfully", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(3, lang{en: "Deleted successfully", zh_cn: "删除成功"})
)

// 通用错误码
var (
	ErrorInvalidParams        = NewError(10000001, lang{en: "Invalid request parameters", zh_cn: "入参错误"})
	ErrorNotFoundAPI          = NewError(10000002, lang{en: "API not found", zh_cn: "找不到对应接口"})
	ErrorTooManyRequests      = NewError(10000003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorServerInternal       = NewError(10000004, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorNotUserAuthToken     = NewError(10000005, lang{en: "Auth token not provided", zh_cn: "未携带认证令牌"})
	ErrorInvalidUserAuthToken = NewError(10000006, lang{en: "Invalid auth token", zh_cn: "认证令牌无效"})
	ErrorRequestTimeout       = NewError(10000007, lang{en: "Request timeout", zh_cn: "请求超时"})
)

// 数据层错误码
var (
	ErrorDBQuery = NewError(10100001, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
)

// 笔记业务错误码
var (
	ErrorNoteNotFound   = NewError(10200001, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorLabelNotFound  = NewError(10200002, lang{en: "Label not found", zh_cn: "标签不存在"})
	ErrorNoteBodyDouble = NewError(10200003, lang{en: "Note content and checklist items are mutually exclusive", zh_cn: "笔记内容与清单条目不能同时提交"})
)
