// Package tracing 把 gorm、redis 和 resty 的调用挂到当前请求的 Sentry transaction 下
package tracing

import (
	"citizens-link/config"
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// IsEnabled 检查 Sentry 追踪是否已启用
func IsEnabled() bool {
	cfg := config.Current()
	return cfg != nil && cfg.Sentry.Dsn != ""
}

// StartSpan 在 ctx 中的 span 下创建子 span
// 没有父 span 时返回 nil，调用方用 finish 结束即可
func StartSpan(ctx context.Context, operation, description string) *sentry.Span {
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(operation)
	span.Description = description
	return span
}

// finish 结束 span，耗时低于阈值的不采样
func finish(span *sentry.Span, elapsed, threshold time.Duration, err error) {
	if span == nil {
		return
	}
	if threshold > 0 && elapsed < threshold {
		span.Sampled = sentry.SampledFalse
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}

func slowThreshold(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
