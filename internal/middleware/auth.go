package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridehail/internal/auth"
	"ridehail/internal/repository"
	"ridehail/internal/service"
)

const requesterKey = "requester"

// RequireAuth returns middleware that validates the bearer token, loads the
// account behind it and attaches the requester to the context.
func RequireAuth(tokens *auth.JWTService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "), auth.TokenTypeAccess)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, "unknown user")
			return
		}

		c.Set(requesterKey, service.Requester{UserID: user.ID, IsStaff: user.IsStaff})
		c.Next()
	}
}

// RequesterFrom returns the authenticated requester set by RequireAuth.
func RequesterFrom(c *gin.Context) (service.Requester, bool) {
	value, ok := c.Get(requesterKey)
	if !ok {
		return service.Requester{}, false
	}
	req, ok := value.(service.Requester)
	return req, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
