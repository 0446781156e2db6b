package stats

import (
	"citizens-link/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (*ModuleStats) InitRouter(r *gin.RouterGroup) {
	commonGroup := r.Group("/stats")
	{
		commonGroup.GET("/rank", Rank)
		commonGroup.GET("/rank/search", Search)
		commonGroup.GET("/rank/exact", Exact)
		commonGroup.GET("/tier", Tier)
		commonGroup.GET("/tiers", Tiers)
	}
	adminGroup := r.Group("/stats", middleware.Auth(middleware.RoleStaff))
	{
		adminGroup.GET("/rank/export", Export)
		adminGroup.POST("/rank/archive", Archive)
	}
}
