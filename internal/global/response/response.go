package response

import (
	"citizens-link/config"
	"citizens-link/internal/global/sentry"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
)

// ResponseBody 统一响应体，HTTP 状态码始终为 200，业务状态看 code
type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Tips   string `json:"tips,omitempty"`
	Data   any    `json:"data,omitempty"`
	Origin string `json:"origin,omitempty"`
}

func Success(c *gin.Context, data ...any) {
	body := ResponseBody{
		Code: http.StatusOK,
		Msg:  "success",
	}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Fail 输出错误响应并中断后续 handler
// 非 *Error 的错误按服务器内部错误处理
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	body := ResponseBody{
		Code: e.Code,
		Msg:  e.Message,
		Tips: e.Tips,
	}
	if debugMode() {
		body.Origin = e.Origin
	}
	c.Set(ErrorContextKey, e)
	c.Set(ResponseContextKey, body)
	sentry.CaptureException(c, e)
	c.AbortWithStatusJSON(http.StatusOK, body)
}

// Recovery 将 panic 转为 500 响应，配合 defer 使用
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		Fail(c, ErrServerInternal.WithOrigin(pkgerrors.Errorf("panic: %v", r)))
	}
}

func debugMode() bool {
	cfg := config.Current()
	return cfg == nil || cfg.Mode != config.ModeRelease
}
