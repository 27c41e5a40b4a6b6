package middleware

import (
	"errors"
	"strings"

	"go_listar/internal/auth"
	"go_listar/internal/httpx"
	"go_listar/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerKey = "caller"

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired validates the JWT token and resolves the caller context
// once for the request
func AuthRequired(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			httpx.FailErr(c, httpx.ErrUnauthorized("missing authorization header"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				httpx.FailErr(c, httpx.ErrTokenExpired("token expired"))
			} else {
				httpx.FailErr(c, httpx.ErrInvalidToken("invalid token"))
			}
			c.Abort()
			return
		}

		caller, err := resolver.Resolve(claims.UID)
		if err != nil {
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to resolve caller", err))
			c.Abort()
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is present and
// leaves the request anonymous otherwise. Token errors are ignored, the
// same way the legacy API treated optional auth.
func OptionalAuth(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := auth.ParseToken(token); err == nil {
				if caller, err := resolver.Resolve(claims.UID); err == nil {
					c.Set(callerKey, caller)
				}
			}
		}
		c.Next()
	}
}

// AdminRequired is a hard gate for moderation endpoints. It runs after
// AuthRequired and rejects any caller the resolver did not mark admin.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := Caller(c)
		if !caller.Authenticated() {
			httpx.FailErr(c, httpx.ErrUnauthorized(""))
			c.Abort()
			return
		}
		if !caller.IsAdmin {
			httpx.FailErr(c, httpx.ErrForbidden("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Caller returns the resolved caller for the request, or the anonymous
// caller if no auth middleware stored one
func Caller(c *gin.Context) identity.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(identity.Caller); ok {
			return caller
		}
	}
	return identity.Anonymous
}
