package httpapi

import (
	"net/http"

	"tinyurl.local/gee"
	"tinyurl.local/internal/app/tinyurl"
)

// handler 只做翻译：gee.Context -> tinyurl.Request，tinyurl.Response -> HTTP。

func NewGenerateHandler(s *tinyurl.GenerateService) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		req, ok := toRequest(ctx)
		if !ok {
			return
		}
		write(ctx, s.Generate(ctx.Req.Context(), req))
	}
}

func NewResolveHandler(s *tinyurl.ResolveService) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		req, ok := toRequest(ctx)
		if !ok {
			return
		}
		write(ctx, s.Resolve(ctx.Req.Context(), req))
	}
}

func toRequest(ctx *gee.Context) (tinyurl.Request, bool) {
	body, err := ctx.Body()
	if err != nil {
		ctx.AbortWithError(http.StatusBadRequest, "unreadable body")
		return tinyurl.Request{}, false
	}
	return tinyurl.Request{
		RequestID:      ctx.Req.Header.Get("X-Request-ID"),
		Method:         ctx.Method,
		Path:           ctx.Path,
		PathParameters: ctx.Params,
		Body:           body,
	}, true
}

func write(ctx *gee.Context, resp tinyurl.Response) {
	for k, v := range resp.Headers {
		ctx.SetHeader(k, v)
	}
	if resp.Body == "" {
		ctx.Status(resp.StatusCode)
		return
	}
	ctx.Data(resp.StatusCode, []byte(resp.Body))
}

func preflight(ctx *gee.Context) {
	ctx.SetHeader("Access-Control-Allow-Origin", "*")
	ctx.SetHeader("Access-Control-Allow-Credentials", "true")
	ctx.SetHeader("Access-Control-Allow-Methods", "POST, OPTIONS")
	ctx.SetHeader("Access-Control-Allow-Headers", "Content-Type")
	ctx.Status(http.StatusNoContent)
}
