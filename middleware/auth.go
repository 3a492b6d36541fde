package middleware

import (
	"net/http"
	"strings"

	"stayloop/models"
	"stayloop/utils"

	"github.com/gin-gonic/gin"
)

// ActorAuthMiddleware extracts the authenticated actor from the bearer token
// minted by the identity service and places id and role in the request
// context. Authentication is the identity service's problem; the engine only
// performs authorization against the booking's host/tenant identities.
func ActorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		actorID, role, err := utils.ExtractActorFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		if role != models.RoleHost && role != models.RoleTenant {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unknown actor role",
			})
			return
		}

		c.Set("actorID", actorID)
		c.Set("actorRole", role)
		c.Next()
	}
}

// RequireRole aborts unless the authenticated actor carries the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("actorRole") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Action not permitted for this role",
			})
			return
		}
		c.Next()
	}
}
