package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/money_transfer_engine/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ErrorCodeUnauthorized is returned for missing or invalid bearer tokens.
const ErrorCodeUnauthorized = "AUTH-401"

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{ErrorCode: ErrorCodeUnauthorized, Message: msg})
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
// The token subject becomes the acting username. When issuer is non-empty the
// token must carry it.
func AuthMiddleware(jwtSecret string, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			abortUnauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			abortUnauthorized(c, msg)
			return
		}

		if !token.Valid || claims.Subject == "" {
			logger.Warn("Username (subject) missing from token")
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		username := claims.Subject
		enrichedLogger := logger.With(slog.String("username", username))
		ctx := WithLogger(WithUsername(c.Request.Context(), username), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
