package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"rental/internal/domain"
)

// ActorContextKey is the gin context key under which the authenticated actor
// is stored.
const ActorContextKey = "actor"

// Claims is the JWT claim set issued by the upstream auth service.
type Claims struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the Bearer token and injects the actor identity
// into the request context. Token issuance lives upstream; this only verifies.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		var claims Claims
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ActorContextKey, domain.Actor{
			TenantID: claims.TenantID,
			ActorID:  claims.Subject,
			Role:     domain.ActorRole(claims.Role),
		})

		c.Next()
	}
}

// RequireRole aborts with 403 unless the actor has one of the given roles.
// Admins pass every check.
func RequireRole(roles ...domain.ActorRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(ActorContextKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "actor context not found"})
			return
		}

		actor := value.(domain.Actor)
		if actor.Role == domain.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// ActorFrom extracts the authenticated actor from the gin context. The zero
// Actor is returned for unauthenticated routes.
func ActorFrom(c *gin.Context) domain.Actor {
	if value, ok := c.Get(ActorContextKey); ok {
		return value.(domain.Actor)
	}
	return domain.Actor{}
}
