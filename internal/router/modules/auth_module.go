package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finledger/finledger/internal/container"
	handlers "github.com/finledger/finledger/internal/interface/http"
	"github.com/finledger/finledger/internal/interface/middleware"
)

// AuthModule wires the public account routes.
// POST /api/auth/register, POST /api/auth/login,
// POST /api/auth/reset/init, POST /api/auth/reset/confirm
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIP(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", registerLimiter, m.Handler.Register)
		auth.POST("/login", loginLimiter, m.Handler.Login)
		auth.POST("/reset/init", resetLimiter, m.Handler.ResetInit)
		auth.POST("/reset/confirm", resetLimiter, m.Handler.ResetConfirm)
	}
}
