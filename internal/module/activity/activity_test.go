package activity

import (
	"citizens-link/config"
	"citizens-link/internal/global/jwt"
	"citizens-link/internal/global/middleware"
	"citizens-link/internal/global/response"
	"citizens-link/internal/model"
	"citizens-link/internal/store"
	"citizens-link/test"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*gin.Engine, string) {
	config.Set(&config.Config{JWT: config.JWT{AccessSecret: "test-secret", AccessExpire: 3600}})
	prev := store.Default
	store.Default = store.NewMemory()
	t.Cleanup(func() {
		store.Default = prev
		config.Set(nil)
	})
	r := gin.New()
	(&ModuleActivity{}).InitRouter(r.Group("/api"))
	return r, jwt.CreateToken(jwt.Payload{Username: "admin", RoleID: middleware.RoleStaff})
}

func TestActivityCRUD(t *testing.T) {
	r, token := setup(t)

	resp := test.ServeJSON(t, r, http.MethodPost, "/api/activity/create", gin.H{"name": "캠페인", "base_points": 20}, "")
	test.ErrorEqual(t, response.ErrTokenInvalid, resp)

	resp = test.ServeJSON(t, r, http.MethodPost, "/api/activity/create", gin.H{"name": "캠페인", "base_points": 20}, token)
	test.NoError(t, resp)
	var created model.ActivityType
	test.DecodeData(t, resp, &created)
	require.NotZero(t, created.ID)

	resp = test.ServeJSON(t, r, http.MethodPost, "/api/activity/create", gin.H{"name": "캠페인", "base_points": 5}, token)
	test.ErrorEqual(t, response.ErrAlreadyExists, resp)

	resp = test.ServeJSON(t, r, http.MethodPost, "/api/activity/create", gin.H{"name": "서명", "base_points": -1}, token)
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	resp = test.ServeJSON(t, r, http.MethodPut, "/api/activity/update/1", gin.H{"base_points": 35}, token)
	test.NoError(t, resp)
	var updated model.ActivityType
	test.DecodeData(t, resp, &updated)
	require.Equal(t, 35, updated.BasePoints)
	require.Equal(t, "캠페인", updated.Name)

	resp = test.ServeJSON(t, r, http.MethodPut, "/api/activity/update/9", gin.H{"base_points": 1}, token)
	test.ErrorEqual(t, response.ErrNotFound, resp)

	resp = test.ServeJSON(t, r, http.MethodGet, "/api/activity/list", nil, "")
	test.NoError(t, resp)
	var list struct {
		List  []model.ActivityType `json:"list"`
		Total int                  `json:"total"`
	}
	test.DecodeData(t, resp, &list)
	require.Equal(t, 1, list.Total)
	require.Equal(t, 35, list.List[0].BasePoints)

	resp = test.ServeJSON(t, r, http.MethodGet, "/api/activity/get/1", nil, "")
	test.NoError(t, resp)
	resp = test.ServeJSON(t, r, http.MethodGet, "/api/activity/get/x", nil, "")
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)
}
