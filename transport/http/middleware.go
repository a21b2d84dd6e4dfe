package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/service"
)

// identityKey is the request-context key under which the authenticated
// subject is stored.
const identityKey = "authSubject"

const bearerPrefix = "Bearer "

// Authenticate validates the bearer token on each inbound request exactly
// once. A request without a usable Authorization header proceeds anonymously;
// whether that is acceptable is decided downstream. A present token that
// fails validation short-circuits the chain with a 401, keeping expired and
// invalid tokens distinguishable in the response body.
func Authenticate(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}

		subject, err := authService.Authenticate(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			if errors.Is(err, core.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, Fail("AccessToken has expired"))
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, Fail("Invalid token"))
			}
			return
		}

		c.Set(identityKey, subject)
		c.Next()
	}
}

// RequireIdentity guards routes that must not be reached anonymously.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(identityKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Fail("authentication required"))
			return
		}
		c.Next()
	}
}

// Subject returns the authenticated subject for the request, if any.
func Subject(c *gin.Context) (string, bool) {
	subject, ok := c.Get(identityKey)
	if !ok {
		return "", false
	}
	return subject.(string), true
}
