package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/finledger/finledger/internal/application"
	"github.com/finledger/finledger/internal/domain/entity"
	mw "github.com/finledger/finledger/internal/interface/middleware"
	"github.com/finledger/finledger/pkg/response"
	"github.com/finledger/finledger/pkg/validation"
)

const dateLayout = "2006-01-02"

type TransactionHandler struct {
	Svc    *application.TransactionService
	Logger *logrus.Logger
}

func NewTransactionHandler(svc *application.TransactionService, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{Svc: svc, Logger: logger}
}

type transactionRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
}

type transactionResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	ReceiptURL  string  `json:"receipt_url,omitempty"`
}

func toTransactionResponse(t *entity.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
		Type:        string(t.Type),
		Date:        t.Date.Format(dateLayout),
		ReceiptURL:  t.ReceiptURL,
	}
}

func (r transactionRequest) toInput() application.TransactionInput {
	d, _ := time.Parse(dateLayout, r.Date) // validated by binding
	return application.TransactionInput{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Type:        entity.TransactionType(r.Type),
		Date:        d,
	}
}

// writeEntryError maps service errors on owned entries to HTTP statuses.
// A missing entry reports 404 before ownership is considered; an entry owned
// by someone else reports 403.
func (h *TransactionHandler) writeEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusUnauthorized, "not authorized", nil)
	case errors.Is(err, application.ErrEntryNotFound):
		response.Error[any](c, http.StatusNotFound, "transaction not found", nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusForbidden, "unauthorized access to transaction", nil)
	default:
		h.Logger.WithError(err).Error("transaction operation failed")
		response.Error[any](c, http.StatusInternalServerError, "operation failed", nil)
	}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	email := c.GetString(mw.ContextUserEmail)
	if err := h.Svc.Add(c.Request.Context(), email, req.toInput()); err != nil {
		h.writeEntryError(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"created": true}, "transaction recorded", nil)
}

func (h *TransactionHandler) List(c *gin.Context) {
	email := c.GetString(mw.ContextUserEmail)
	list, err := h.Svc.List(c.Request.Context(), email)
	if err != nil {
		h.writeEntryError(c, err)
		return
	}

	out := make([]transactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	response.Success(c, http.StatusOK, out, "transactions listed", map[string]any{"count": len(out)})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	email := c.GetString(mw.ContextUserEmail)
	if err := h.Svc.Update(c.Request.Context(), email, c.Param("id"), req.toInput()); err != nil {
		h.writeEntryError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "transaction updated", nil)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	email := c.GetString(mw.ContextUserEmail)
	if err := h.Svc.Delete(c.Request.Context(), email, c.Param("id")); err != nil {
		h.writeEntryError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "transaction deleted", nil)
}

func (h *TransactionHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}

	email := c.GetString(mw.ContextUserEmail)
	hits, err := h.Svc.Search(c.Request.Context(), email, q, 10)
	if err != nil {
		h.writeEntryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func (h *TransactionHandler) UploadReceipt(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	email := c.GetString(mw.ContextUserEmail)
	url, err := h.Svc.UploadReceipt(c.Request.Context(), email, c.Param("id"), f, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.writeEntryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"receipt_url": url}, "receipt uploaded", nil)
}
