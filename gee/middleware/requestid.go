package middleware

import (
	"github.com/google/uuid"

	"tinyurl.local/gee"
)

const requestIDHeader = "X-Request-ID"

// ReqID keeps an incoming X-Request-ID or assigns a fresh UUID, and echoes it
// on the response.
func ReqID() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		id := ctx.Req.Header.Get(requestIDHeader)
		if id == "" {
			id = GenerateReqID()
			ctx.Req.Header.Set(requestIDHeader, id)
		}
		ctx.SetHeader(requestIDHeader, id)

		ctx.Next()
	}
}

func GenerateReqID() string {
	return uuid.NewString()
}
