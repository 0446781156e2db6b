package view

import (
	"strconv"
	"strings"
)

// View 前端的页面
type View string

const (
	ViewHome    View = "home"
	ViewGuide   View = "guide"
	ViewVision  View = "vision"
	ViewRanking View = "ranking"
	ViewPoints  View = "points"
	ViewAdmin   View = "admin"
)

// State 由查询参数决定的页面状态
type State struct {
	View   View `json:"view"`
	QR     bool `json:"qr"`               // 现场扫码进入，提交即通过
	Preset uint `json:"preset,omitempty"` // 首页表单预选的活动
}

// Parse 解析 mode / admin / activity 参数，未知的 mode 回到首页
func Parse(mode, admin, activity string) State {
	state := State{View: ViewHome}
	switch m := View(strings.ToLower(strings.TrimSpace(mode))); m {
	case "qr":
		state.QR = true
	case "hq", ViewAdmin:
		state.View = ViewAdmin
	case ViewGuide, ViewVision, ViewRanking, ViewPoints:
		state.View = m
	}
	if ok, err := strconv.ParseBool(admin); err == nil && ok {
		state.View = ViewAdmin
		state.QR = false
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(activity), 10, 64); err == nil && id > 0 {
		state.Preset = uint(id)
	}
	return state
}
