package activity

import (
	"citizens-link/internal/global/response"
	"citizens-link/internal/leaderboard"
	"citizens-link/internal/model"
	"citizens-link/internal/store"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ActivityCreateReq 定义创建活动请求的结构体
type ActivityCreateReq struct {
	Name       string `json:"name" binding:"required"` // 活动名称
	BasePoints *int   `json:"base_points" binding:"required,min=0"`
}

// ActivityUpdateReq 使用指针类型支持部分更新
type ActivityUpdateReq struct {
	Name       *string `json:"name"`                                  // 活动名称，可选
	BasePoints *int    `json:"base_points" binding:"omitempty,min=0"` // 修改会追溯影响排行榜
}

// CreateActivity 处理创建活动请求
func CreateActivity(c *gin.Context) {
	var req ActivityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("활동 이름을 입력해주세요."))
		return
	}

	activity := model.ActivityType{Name: name, BasePoints: *req.BasePoints}
	err := store.Default.CreateActivityType(c.Request.Context(), &activity)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		log.Warn("活动已存在", "name", name)
		response.Fail(c, response.ErrAlreadyExists.WithTips("이미 존재하는 활동입니다."))
		return
	case err != nil:
		log.Error("创建活动失败", "error", err, "name", name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("活动创建成功", "id", activity.ID, "name", activity.Name, "base_points", activity.BasePoints)
	response.Success(c, activity)
}

// ListActivities 所有活动类型，按 ID 升序
func ListActivities(c *gin.Context) {
	types, err := store.Default.ListActivityTypes(c.Request.Context())
	if err != nil {
		log.Error("获取活动列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"list":  types,
		"total": len(types),
	})
}

func GetActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	activity, err := store.Default.GetActivityType(c.Request.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("존재하지 않는 활동입니다."))
		return
	case err != nil:
		log.Error("获取活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, activity)
}

// UpdateActivity 修改名称或积分
func UpdateActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ActivityUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			response.Fail(c, response.ErrInvalidRequest.WithTips("활동 이름을 입력해주세요."))
			return
		}
		req.Name = &name
	}

	activity, err := store.Default.UpdateActivityType(c.Request.Context(), id, store.ActivityTypeUpdate{
		Name:       req.Name,
		BasePoints: req.BasePoints,
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("존재하지 않는 활동입니다."))
		return
	case errors.Is(err, store.ErrDuplicate):
		response.Fail(c, response.ErrAlreadyExists.WithTips("이미 존재하는 활동입니다."))
		return
	case err != nil:
		log.Error("更新活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.BasePoints != nil {
		leaderboard.Invalidate(c.Request.Context())
	}
	log.Info("活动更新成功", "id", id)
	response.Success(c, activity)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("잘못된 활동 ID입니다."))
		return 0, false
	}
	return uint(id), true
}
