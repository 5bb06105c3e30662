package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy-backend/internal/identity"
)

const identityKey = "identity"

// OptionalIdentity resolves the bearer token when one is present. A
// missing or invalid token is not an error; the request continues
// anonymously.
func OptionalIdentity(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			log.Println("[AUTH] [WARN] optional resolve failed:", err)
			c.Next()
			return
		}
		if id != nil {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// RequireIdentity rejects anonymous callers with 401.
func RequireIdentity(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			log.Println("[AUTH] [ERROR] resolve failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
			return
		}
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireAdmin rejects anonymous callers with 401 and authenticated
// non-admins with 403.
func RequireAdmin(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			log.Println("[AUTH] [ERROR] resolve failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
			return
		}
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !id.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the resolved identity, or nil for anonymous
// requests.
func IdentityFrom(c *gin.Context) *identity.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := value.(*identity.Identity)
	return id
}
