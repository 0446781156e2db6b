package module

import (
	"citizens-link/internal/module/activity"
	"citizens-link/internal/module/ping"
	"citizens-link/internal/module/report"
	"citizens-link/internal/module/stats"
	"citizens-link/internal/module/user"
	"citizens-link/internal/module/view"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&activity.ModuleActivity{},
		&report.ModuleReport{},
		&stats.ModuleStats{},
		&view.ModuleView{},
	})
}
