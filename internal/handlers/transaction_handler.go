package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/httpresp"
	"github.com/dermaline/studio-scheduler/internal/models"
	"github.com/dermaline/studio-scheduler/internal/timezone"
)

type TransactionHandler struct {
	db *gorm.DB
	tz string
}

func NewTransactionHandler(db *gorm.DB, tz string) *TransactionHandler {
	return &TransactionHandler{db: db, tz: tz}
}

// ======================================================
// LIST (date range)
// ======================================================

func (h *TransactionHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Transaction{}).Preload("Payments")

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := parseDate(h.tz, fromStr); err == nil {
			q = q.Where("occurred_at >= ?", from)
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := parseDate(h.tz, toStr); err == nil {
			q = q.Where("occurred_at < ?", to.Add(24*time.Hour))
		}
	}
	if doc := c.Query("client_document"); doc != "" {
		q = q.Where("client_document = ?", doc)
	}
	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var txs []models.Transaction
	if err := q.
		Order("occurred_at DESC").
		Find(&txs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_transactions", "Error al listar movimientos.")
		return
	}

	httpresp.List(c, txs)
}

// ======================================================
// CREATE STANDALONE SALE
// ======================================================

type PaymentEntry struct {
	Method  string   `json:"method" binding:"required"`
	RefCode string   `json:"ref_code"`
	Amount  *float64 `json:"amount" binding:"required"`
}

type CreateSaleRequest struct {
	ClientDocument string `json:"client_document" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone"`

	ServiceType string `json:"service_type" binding:"required"`
	Procedure   string `json:"procedure"`

	Date string `json:"date"`

	// A sale with no payments is legal: a tracking-only placeholder that
	// contributes 0 to revenue.
	Payments []PaymentEntry `json:"payments"`

	Cream   bool   `json:"cream"`
	Comment string `json:"comment"`
}

func (h *TransactionHandler) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	occurredAt := timezone.NowIn(h.tz)
	if req.Date != "" {
		d, err := parseDate(h.tz, req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return
		}
		occurredAt = d
	}

	tx := models.Transaction{
		ID:             uuid.NewString(),
		OccurredAt:     occurredAt,
		ClientDocument: req.ClientDocument,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ServiceType:    req.ServiceType,
		Procedure:      req.Procedure,
		Cream:          req.Cream,
		Comment:        req.Comment,
		Source:         models.SourceManual,
	}

	for _, p := range req.Payments {
		if *p.Amount < 0 {
			httperr.BadRequest(c, "invalid_amount", "Monto de pago negativo.")
			return
		}
		tx.Payments = append(tx.Payments, models.Payment{
			ID:      uuid.NewString(),
			Method:  p.Method,
			RefCode: p.RefCode,
			Amount:  *p.Amount,
		})
	}

	if err := h.db.Create(&tx).Error; err != nil {
		httperr.Internal(c, "failed_to_create_transaction", "Error al registrar la venta.")
		return
	}

	c.JSON(http.StatusCreated, tx)
}
