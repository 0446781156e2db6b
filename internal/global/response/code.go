package response

var (
	ErrInvalidRequest   = newError(400, "请求参数错误")
	ErrTokenInvalid     = newError(401, "Token 无效")
	ErrUnauthorized     = newError(401, "未授权")
	ErrForbidden        = newError(403, "无权限")
	ErrNotFound         = newError(404, "资源不存在")
	ErrAlreadyExists    = newError(409, "资源已存在")
	ErrConflict         = newError(409, "状态冲突")
	ErrServerInternal   = newError(500, "服务器内部错误")
	ErrDatabase         = newError(500, "数据库错误")
	ErrExport           = newError(500, "导出失败")
	ErrStoreUnavailable = newError(502, "数据存储服务不可用")
)
