package ping

import (
	"citizens-link/internal/global/logger"
	"log/slog"
)

var log = slog.Default()

type ModulePing struct{}

func (p *ModulePing) GetName() string {
	return "Ping"
}

func (p *ModulePing) Init() {
	log = logger.New("Ping")
}
