package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finledger/finledger/internal/container"
	handlers "github.com/finledger/finledger/internal/interface/http"
	"github.com/finledger/finledger/internal/interface/middleware"
	"github.com/finledger/finledger/pkg/helpers"
)

// TransactionModule wires the owner-scoped ledger routes under /api/transactions.
// Every route requires a valid bearer token.
type TransactionModule struct {
	Handler *handlers.TransactionHandler
	JWT     *helpers.JWTManager
}

func NewTransactionModule(h *handlers.TransactionHandler, jwt *helpers.JWTManager) *TransactionModule {
	return &TransactionModule{Handler: h, JWT: jwt}
}

func (m *TransactionModule) Register(rg *gin.RouterGroup) {
	tx := rg.Group("/transactions")
	tx.Use(middleware.JWT(m.JWT))
	tx.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil),
	)
	{
		tx.POST("", m.Handler.Create)
		tx.GET("", m.Handler.List)
		tx.GET("/search", m.Handler.Search)
		tx.PUT("/:id", m.Handler.Update)
		tx.DELETE("/:id", m.Handler.Delete)
		tx.POST("/:id/receipt", m.Handler.UploadReceipt)
	}
}
