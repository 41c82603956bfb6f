package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	corsAllowMethods = "GET,POST,OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsMaxAge       = "600"
	anyOrigin        = "*"
)

// corsOrigin picks the Allow-Origin value for origin. An empty list or a
// "*" entry admits everyone; otherwise only listed origins are echoed.
func corsOrigin(allowed []string, origin string) (string, bool) {
	if len(allowed) == 0 {
		return anyOrigin, true
	}
	for _, a := range allowed {
		if a == anyOrigin {
			return anyOrigin, true
		}
		if origin != "" && a == origin {
			return origin, true
		}
	}
	return "", false
}

func applyCORSHeaders(ctx *app.RequestContext, allowed []string) {
	origin, ok := corsOrigin(allowed, string(ctx.Request.Header.Peek("Origin")))
	if !ok {
		return
	}
	ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	if origin != anyOrigin {
		ctx.Response.Header.Set("Vary", "Origin")
	}
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", corsMaxAge)
}

func corsMiddleware(allowed []string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		applyCORSHeaders(ctx, allowed)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
