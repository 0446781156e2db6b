package report

import (
	"citizens-link/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (p *ModuleReport) InitRouter(r *gin.RouterGroup) {
	reportGroup := r.Group("/report")

	// 市民提交不需要登录
	reportGroup.POST("/submit", SubmitReport)

	staff := reportGroup.Group("", middleware.Auth(middleware.RoleStaff))
	staff.GET("/pending", ListPending)
	staff.POST("/approve/:id", ApproveReport)
}
