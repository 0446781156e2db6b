package activity

import (
	"citizens-link/internal/global/logger"
	"log/slog"
)

var log = slog.Default()

type ModuleActivity struct{}

func (p *ModuleActivity) GetName() string {
	return "Activity"
}

func (p *ModuleActivity) Init() {
	log = logger.New("Activity")
}
