package report

import (
	"citizens-link/internal/global/logger"
	"log/slog"
)

var log = slog.Default()

type ModuleReport struct{}

func (p *ModuleReport) GetName() string {
	return "Report"
}

func (p *ModuleReport) Init() {
	log = logger.New("Report")
}
