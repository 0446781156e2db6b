package stats

import (
	"citizens-link/config"
	"citizens-link/internal/global/bucket"
	"citizens-link/internal/global/logger"
	"log/slog"
)

var (
	log     = slog.Default()
	archive *bucket.Bucket
)

type ModuleStats struct{}

func (*ModuleStats) GetName() string {
	return "Stats"
}

func (*ModuleStats) Init() {
	log = logger.New("Stats")
	archive = bucket.FromConfig(config.Get().S3)
}
