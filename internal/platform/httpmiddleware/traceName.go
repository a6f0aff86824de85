package httpmiddleware

import (
	"go.opentelemetry.io/otel/trace"

	"tinyurl.local/gee"
)

// TraceName renames the otelhttp server span to "<METHOD> <route pattern>",
// e.g. "GET /:tinyId", so spans are not keyed by random ids.
func TraceName() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		route := ctx.RoutePattern
		if route == "" {
			route = "UNMATCHED"
		}
		span := trace.SpanFromContext(ctx.Req.Context())
		span.SetName(ctx.Method + " " + route)
		ctx.Next()
	}
}
