package view

import (
	"citizens-link/internal/global/logger"
	"log/slog"
)

var log = slog.Default()

type ModuleView struct{}

func (*ModuleView) GetName() string {
	return "View"
}

func (*ModuleView) Init() {
	log = logger.New("View")
}
