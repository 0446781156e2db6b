package user

import (
	"citizens-link/config"
	"citizens-link/internal/global/jwt"
	"citizens-link/internal/global/logger"
	"citizens-link/internal/global/response"
	"citizens-link/tools"

	"github.com/gin-gonic/gin"
)

// LoginReq 登录请求
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 账号在配置文件中，只保存 bcrypt 哈希
func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	staff, ok := findStaff(req.Username)
	if !ok || !tools.PasswordCompare(req.Password, staff.PasswordHash) {
		logger.WithContext(log, c).Warn("登录失败", "username", req.Username)
		response.Fail(c, response.ErrUnauthorized.WithTips("아이디 또는 비밀번호가 올바르지 않습니다."))
		return
	}

	log.Info("运营本部登录成功", "username", staff.Username, "role_id", staff.RoleID)
	response.Success(c, gin.H{
		"token": jwt.CreateToken(jwt.Payload{
			Username: staff.Username,
			RoleID:   staff.RoleID,
		}),
		"username": staff.Username,
		"role_id":  staff.RoleID,
	})
}

func Me(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	response.Success(c, payload.Payload)
}

func findStaff(username string) (config.Staff, bool) {
	for _, s := range config.Get().Staff {
		if s.Username == username {
			return s, true
		}
	}
	return config.Staff{}, false
}
