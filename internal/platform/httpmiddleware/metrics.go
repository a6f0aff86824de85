package httpmiddleware

import (
	"strconv"
	"time"

	"tinyurl.local/gee"
	"tinyurl.local/internal/platform/metrics"
)

// Metrics records request count, latency and in-flight gauge. The route label
// is the matched pattern, never the raw path: every tinyId would otherwise
// become its own series.
func Metrics() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		start := time.Now()
		metrics.HTTPInflightRequests.Inc()
		defer metrics.HTTPInflightRequests.Dec()

		defer func() {
			route := ctx.RoutePattern
			if route == "" {
				route = "UNMATCHED"
			}
			status := strconv.Itoa(ctx.Writer.Status())
			metrics.HTTPRequestsTotal.WithLabelValues(ctx.Method, route, status).Inc()
			metrics.HTTPRequestDurationSeconds.WithLabelValues(ctx.Method, route).Observe(time.Since(start).Seconds())
		}()
		ctx.Next()
	}
}
