package ping

import (
	"citizens-link/internal/global/response"
	"citizens-link/internal/store"

	"github.com/gin-gonic/gin"
)

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", func(c *gin.Context) {
		result := map[string]interface{}{
			"message": "pong",
			"version": "1.0.0",
		}
		response.Success(c, result)
	})

	// 检查数据存储是否可用
	r.GET("/ping/store", func(c *gin.Context) {
		if _, err := store.Default.ListActivityTypes(c.Request.Context()); err != nil {
			log.Error("数据存储不可用", "error", err)
			response.Fail(c, response.ErrStoreUnavailable.WithOrigin(err))
			return
		}
		response.Success(c, map[string]interface{}{"store": "ok"})
	})
}
