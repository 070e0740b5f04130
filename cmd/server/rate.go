package main

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// rateLimit queues requests beyond rps per second for at most wait.
// A non-positive rps disables limiting.
func rateLimit(next fasthttp.RequestHandler, rps int, wait time.Duration) fasthttp.RequestHandler {
	if rps <= 0 {
		return next
	}

	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	return func(ctx *fasthttp.RequestCtx) {
		c, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()

		if err := limiter.Wait(c); err != nil {
			ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
			ctx.SetContentType("application/json")
			ctx.SetBodyString(`{"error":"rate limit exceeded"}`)
			return
		}
		next(ctx)
	}
}
