package server

import (
	"citizens-link/config"
	"citizens-link/internal/global/bucket"
	"citizens-link/internal/global/cache"
	"citizens-link/internal/global/database"
	"citizens-link/internal/global/httpclient"
	"citizens-link/internal/global/jwt"
	"citizens-link/internal/global/logger"
	"citizens-link/internal/global/middleware"
	"citizens-link/internal/global/sentry"
	"citizens-link/internal/job"
	"citizens-link/internal/leaderboard"
	"citizens-link/internal/module"
	"citizens-link/internal/store"
	"citizens-link/tools"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

var log = slog.Default()

func Init() {
	config.Init()
	tools.PanicOnErr(sentry.Init())
	log = logger.New("Server")
	tools.PanicOnErr(jwt.Init())

	InitStore()
	if err := cache.Init(); err != nil {
		// 缓存不可用时直接读存储
		log.Warn("Redis 不可用，排行榜不缓存", "error", err)
	}
	tools.PanicOnErr(leaderboard.Init())

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

// InitStore 初始化存储后端，gorm 后端需要先连接数据库
func InitStore() {
	httpclient.Init()
	if config.Get().Store.Backend == store.BackendGorm {
		tools.PanicOnErr(database.Init())
	}
	tools.PanicOnErr(store.Init(database.DB))
	log.Info("Store Ready", "backend", config.Get().Store.Backend)
}

// NewEngine 组装中间件和所有模块的路由
func NewEngine() *gin.Engine {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	r.Use(sentry.Middleware())
	r.Use(sentry.EnrichIP())
	r.Use(middleware.RequestID())
	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	return r
}

func Run() {
	cfg := config.Get()
	srv := &http.Server{
		Addr:              cfg.Host + ":" + cfg.Port,
		Handler:           NewEngine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var scheduler *job.Scheduler
	if cfg.Job.Enable {
		var err error
		scheduler, err = job.New(cfg.Job, store.Default, bucket.FromConfig(cfg.S3))
		tools.PanicOnErr(err)
		scheduler.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server Listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server Error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting Down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server Shutdown Error", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	cache.Close()
	sentry.Flush(2 * time.Second)
}
