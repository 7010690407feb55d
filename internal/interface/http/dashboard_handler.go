package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/finledger/finledger/internal/application"
	mw "github.com/finledger/finledger/internal/interface/middleware"
	"github.com/finledger/finledger/pkg/response"
)

type DashboardHandler struct {
	Svc    *application.DashboardService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	email := c.GetString(mw.ContextUserEmail)
	sum, err := h.Svc.GetSummary(c.Request.Context(), email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sum, "dashboard summary", nil)
}

func (h *DashboardHandler) Categories(c *gin.Context) {
	email := c.GetString(mw.ContextUserEmail)
	cats, err := h.Svc.GetCategories(c.Request.Context(), email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cats, "category totals", nil)
}

func (h *DashboardHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, application.ErrUserNotFound) {
		response.Error[any](c, http.StatusUnauthorized, "not authorized", nil)
		return
	}
	h.Logger.WithError(err).Error("dashboard query failed")
	response.Error[any](c, http.StatusInternalServerError, "dashboard unavailable", nil)
}
