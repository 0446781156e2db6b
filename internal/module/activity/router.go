package activity

import (
	"citizens-link/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (p *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	// 定义活动模块的路由组，所有活动相关端点以 /activity 为前缀
	activityGroup := r.Group("/activity")

	// 活动积分表公开
	activityGroup.GET("/list", ListActivities)
	activityGroup.GET("/get/:id", GetActivity)

	staff := activityGroup.Group("", middleware.Auth(middleware.RoleStaff))
	{
		staff.POST("/create", CreateActivity)
		staff.PUT("/update/:id", UpdateActivity)
	}
}
