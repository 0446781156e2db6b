package httpclient

import (
	"citizens-link/config"
	"citizens-link/internal/global/sentry/tracing"
	"time"

	"github.com/go-resty/resty/v2"
)

var Client *resty.Client

func Init() {
	Client = New(config.Get().Supabase.Timeout)
}

// New 创建带 Sentry 追踪的 resty 客户端，不做重试
func New(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().SetTimeout(timeout)

	// 配置 Sentry 性能追踪（如果 Sentry 已启用）
	if tracing.IsEnabled() {
		tracing.SetupRestyTracing(client)
	}
	return client
}
