package view

import (
	"github.com/gin-gonic/gin"
)

func (*ModuleView) InitRouter(r *gin.RouterGroup) {
	r.GET("/view", Render)
}
