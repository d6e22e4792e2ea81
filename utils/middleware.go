package utils

import (
	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/rs/zerolog/log"
)

// TenantMiddleware copies the token claims into the request context so
// handlers can read the acting user and company without touching the token
// again. Requests without a company claim never reach tenant-scoped data.
func TenantMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.CompanyID == 0 {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"error": "unauthorized", "message": "token carries no company"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("companyID", claims.CompanyID)
	ctx.Next()
}

// AdminOnlyMiddleware restricts a route to company admins and owners.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "admin" && claims.Role != "owner" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("companyID", claims.CompanyID)
	ctx.Next()
}

// RequestIDMiddleware tags every request with an id used in logs and audit
// rows, honoring an inbound X-Request-ID when present.
func RequestIDMiddleware(ctx iris.Context) {
	requestID := ctx.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Values().Set("requestID", requestID)
	ctx.Header("X-Request-ID", requestID)

	log.Debug().Str("requestID", requestID).
		Str("method", ctx.Method()).Str("path", ctx.Path()).Msg("request")
	ctx.Next()
}

// CompanyID reads the tenant id the middleware stored.
func CompanyID(ctx iris.Context) uint {
	id, _ := ctx.Values().Get("companyID").(uint)
	return id
}

// UserID reads the acting user id the middleware stored.
func UserID(ctx iris.Context) uint {
	id, _ := ctx.Values().Get("userID").(uint)
	return id
}

// RequestID reads the request id the middleware stored.
func RequestID(ctx iris.Context) string {
	id, _ := ctx.Values().Get("requestID").(string)
	return id
}
