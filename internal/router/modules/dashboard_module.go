package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finledger/finledger/internal/container"
	handlers "github.com/finledger/finledger/internal/interface/http"
	"github.com/finledger/finledger/internal/interface/middleware"
	"github.com/finledger/finledger/pkg/helpers"
)

// DashboardModule wires the aggregate views under /api/dashboard.
type DashboardModule struct {
	Handler *handlers.DashboardHandler
	JWT     *helpers.JWTManager
}

func NewDashboardModule(h *handlers.DashboardHandler, jwt *helpers.JWTManager) *DashboardModule {
	return &DashboardModule{Handler: h, JWT: jwt}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	dash := rg.Group("/dashboard")
	dash.Use(middleware.JWT(m.JWT))
	dash.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil))
	{
		dash.GET("/summary", m.Handler.Summary)
		dash.GET("/categories", m.Handler.Categories)
	}
}
