package middleware

import (
	"citizens-link/internal/global/jwt"
	"citizens-link/internal/global/response"
	"strings"

	"github.com/gin-gonic/gin"
)

// RoleStaff 运营本部，可审核报告、维护活动和导出排行榜
const RoleStaff = 1

func Auth(minRoleID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := Authenticate(c, minRoleID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		jwt.SetUserPayload(c, payload)
		c.Next()
	}
}

// Authenticate 校验 Authorization 头，供需要按参数决定是否鉴权的接口使用
func Authenticate(c *gin.Context, minRoleID int) (*jwt.Claims, *response.Error) {
	// 获取 Authorization 头
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, response.ErrTokenInvalid
	}

	// 检查 Bearer 前缀并提取 token
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, response.ErrTokenInvalid
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	// 解析 token
	payload, valid := jwt.ParseToken(token)
	if !valid {
		return nil, response.ErrTokenInvalid
	}
	if payload.RoleID < minRoleID {
		return nil, response.ErrForbidden
	}
	return payload, nil
}
