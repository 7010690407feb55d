package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finledger/finledger/pkg/helpers"
	"github.com/finledger/finledger/pkg/response"
)

// ContextUserEmail is the Gin context key holding the authenticated identity.
const ContextUserEmail = "userEmail"

// JWT validates the bearer token on protected routes and stores the token
// subject in the context. Missing, malformed, expired and tampered tokens all
// produce the same 401 so the response does not reveal which check failed.
func JWT(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}
		email, err := jwt.Validate(token)
		if err != nil || email == "" {
			abortUnauthorized(c)
			return
		}
		c.Set(ContextUserEmail, email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context) {
	response.Error[any](c, http.StatusUnauthorized, "not authorized", nil)
	c.Abort()
}
