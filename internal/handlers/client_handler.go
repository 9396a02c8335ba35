package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/httpresp"
	"github.com/dermaline/studio-scheduler/internal/models"
	"github.com/dermaline/studio-scheduler/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Client{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR document LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// UPSERT (last write wins)
// ======================================================

type UpsertClientRequest struct {
	Document string `json:"document" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Source   string `json:"source"`
}

func (h *ClientHandler) Upsert(c *gin.Context) {
	var req UpsertClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if !validators.IsDocumentValid(req.Document) {
		httperr.BadRequest(c, "invalid_document", "Documento inválido.")
		return
	}
	if req.Phone != "" && !validators.IsPhoneValid(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Teléfono inválido.")
		return
	}

	client := models.Client{
		Document: strings.TrimSpace(req.Document),
		Name:     req.Name,
		Phone:    req.Phone,
		Source:   req.Source,
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_save_client", "Error al guardar el cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}
