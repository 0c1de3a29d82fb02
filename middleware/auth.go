package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe-server/entities"
	"recipe-server/usecases"
)

const userContextKey = "currentUser"

// TokenAuth resolves the "Authorization: Token <key>" header to a user
// and aborts with 401 before any handler logic runs.
func TokenAuth(users *usecases.UserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		const scheme = "Token "
		if !strings.HasPrefix(header, scheme) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		user, err := users.UserByToken(strings.TrimSpace(strings.TrimPrefix(header, scheme)))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid token",
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated caller set by TokenAuth.
// Handlers read it once and pass the user into usecases explicitly.
func CurrentUser(c *gin.Context) *entities.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*entities.User)
	return user
}
