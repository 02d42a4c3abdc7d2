package llm

import (
	"context"
	"fmt"
	"time"

	"ayursathi-api/internal/infrastructure/metrics"

	"golang.org/x/time/rate"
)

// RateLimited spaces calls to gw to at most rps per second with the given
// burst. Callers block until a token is free or ctx ends. A non-positive rps
// returns gw unchanged.
func RateLimited(gw Gateway, rps float64, burst int) Gateway {
	if rps <= 0 {
		return gw
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return GatewayFunc(func(ctx context.Context, prompt string) (string, error) {
		if err := limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		return gw.Invoke(ctx, prompt)
	})
}

// Instrumented records the latency of every call made through gw under the
// given stage label.
func Instrumented(gw Gateway, stage string) Gateway {
	return GatewayFunc(func(ctx context.Context, prompt string) (string, error) {
		start := time.Now()
		text, err := gw.Invoke(ctx, prompt)
		metrics.ObserveModelCall(stage, time.Since(start))
		return text, err
	})
}
