package httpapi

import (
	"tinyurl.local/gee"
	"tinyurl.local/internal/app/tinyurl"
)

// RegisterRoutes 挂载两个对外入口：
//
//	POST /generate   -> GenerateService
//	GET  /:tinyId    -> ResolveService
//
// OPTIONS /generate answers browser preflight with the same CORS headers the
// services always send.
func RegisterRoutes(engine *gee.Engine, gen *tinyurl.GenerateService, res *tinyurl.ResolveService) {
	engine.POST("/generate", NewGenerateHandler(gen))
	engine.OPTIONS("/generate", preflight)
	engine.GET("/:"+tinyurl.ParamTinyID, NewResolveHandler(res))
}
