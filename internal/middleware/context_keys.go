package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey prevents collisions with keys set by other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	usernameKey  = contextKey("username")
)

// WithUsername returns a copy of ctx carrying the authenticated username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsernameFromCtx returns the authenticated username stored by AuthMiddleware.
func GetUsernameFromCtx(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}

// GetUsernameFromContext retrieves the authenticated username from the Gin request.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	return GetUsernameFromCtx(c.Request.Context())
}
