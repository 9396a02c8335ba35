package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/dermaline/studio-scheduler/internal/domain/retention"
	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/middleware"
	ucRetention "github.com/dermaline/studio-scheduler/internal/usecase/retention"
)

type RetentionHandler struct {
	reportUC  *ucRetention.BuildReport
	stateUC   *ucRetention.UpdateState
	archiveUC *ucRetention.ArchiveState
}

func NewRetentionHandler(
	reportUC *ucRetention.BuildReport,
	stateUC *ucRetention.UpdateState,
	archiveUC *ucRetention.ArchiveState,
) *RetentionHandler {
	return &RetentionHandler{
		reportUC:  reportUC,
		stateUC:   stateUC,
		archiveUC: archiveUC,
	}
}

func (h *RetentionHandler) report(c *gin.Context) (*domain.Report, bool) {
	report, err := h.reportUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Error al calcular seguimiento.")
		return nil, false
	}
	return report, true
}

// ======================================================
// VIEWS
// ======================================================

func (h *RetentionHandler) FollowUps(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}

	c.JSON(200, gin.H{
		"items":        domain.Pending(report.Items),
		"metrics":      report.Metrics,
		"generated_at": report.GeneratedAt,
	})
}

func (h *RetentionHandler) Archive(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}

	c.JSON(200, gin.H{"items": domain.Archive(report.Items)})
}

func (h *RetentionHandler) Reactivation(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}

	snap := domain.Snapshot{Now: report.GeneratedAt}

	c.JSON(200, gin.H{"items": domain.Reactivation(snap, report.Items)})
}

func (h *RetentionHandler) Metrics(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}

	c.JSON(200, report.Metrics)
}

// ======================================================
// MANUAL STATE
// ======================================================

type UpdateStateRequest struct {
	Status        string     `json:"status" binding:"required"`
	Notes         string     `json:"notes"`
	TouchContact  bool       `json:"touch_contact"`
	LastContactAt *time.Time `json:"last_contact_at"`
}

func (h *RetentionHandler) UpdateState(c *gin.Context) {
	actorID, actorName := actorFrom(c)

	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	st, err := h.stateUC.Execute(c.Request.Context(), ucRetention.UpdateStateInput{
		SourceID:      c.Param("id"),
		Status:        req.Status,
		Notes:         req.Notes,
		TouchContact:  req.TouchContact,
		LastContactAt: req.LastContactAt,
		ActorID:       actorID,
		ActorName:     actorName,
	})
	if err != nil {
		httperr.BadRequest(c, httperr.BusinessCode(err), "No se pudo actualizar el estado.")
		return
	}

	c.JSON(200, st)
}

type ArchiveRequest struct {
	Archived bool `json:"archived"`
}

func (h *RetentionHandler) SetArchived(c *gin.Context) {
	actorID, actorName := actorFrom(c)
	privileged := c.GetBool(middleware.ContextPrivileged)

	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	st, err := h.archiveUC.Execute(
		c.Request.Context(),
		c.Param("id"),
		req.Archived,
		actorID,
		actorName,
		privileged,
	)
	if err != nil {
		if httperr.IsBusiness(err, "privileged_required") {
			httperr.Forbidden(c, "privileged_required",
				"Solo un usuario con privilegios puede archivar seguimientos.")
			return
		}
		httperr.Internal(c, "failed_to_archive", "Error al archivar.")
		return
	}

	c.JSON(200, st)
}
