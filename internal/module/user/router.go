package user

import (
	"citizens-link/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 运营本部账号的登录，市民不需要账号
func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")

	userGroup.POST("/login", Login)
	userGroup.GET("/me", middleware.Auth(middleware.RoleStaff), Me)
}
