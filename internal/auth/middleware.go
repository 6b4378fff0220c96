package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextKeyIdentity = "identity"

// IdentityFromContext returns the caller set by RequireAuth. The zero
// Identity if not set.
func IdentityFromContext(c *gin.Context) Identity {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}
	}
	id, ok := v.(Identity)
	if !ok {
		return Identity{}
	}
	return id
}

// RequireAuth returns a middleware that checks the Authorization header for
// a valid bearer token and sets the caller identity in context. If missing
// or invalid, responds with 401.
func RequireAuth(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"notauthorized": "Authorization required"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"notauthorized": "Authorization required"})
			return
		}
		id, err := issuer.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"notauthorized": "Authorization required"})
			return
		}
		c.Set(contextKeyIdentity, id)
		c.Next()
	}
}
