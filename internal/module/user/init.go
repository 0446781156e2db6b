package user

import (
	"citizens-link/internal/global/logger"
	"log/slog"
)

var log = slog.Default()

type ModuleUser struct{}

func (u *ModuleUser) GetName() string {
	return "User"
}

func (u *ModuleUser) Init() {
	log = logger.New("User")
}
