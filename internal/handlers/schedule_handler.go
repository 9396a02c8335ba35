package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dermaline/studio-scheduler/internal/domain/schedule"
	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleDayConfig struct {
	Weekday    int  `json:"weekday" binding:"required,min=1,max=7"`
	Open       bool `json:"open"`
	StartHour  int  `json:"start_hour"`
	EndHour    int  `json:"end_hour"`
	Lunch      bool `json:"lunch"`
	LunchStart int  `json:"lunch_start"`
	LunchEnd   int  `json:"lunch_end"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	var rows []models.WeeklySchedule
	if err := h.db.
		Order("weekday ASC").
		Find(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_get_schedule", "Error al leer el horario.")
		return
	}

	week := schedule.NewWeek(rows)

	c.JSON(http.StatusOK, gin.H{
		"days":   rows,
		"bounds": week.GlobalBounds(),
	})
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	toCreate := make([]models.WeeklySchedule, 0, len(req.Days))
	for _, d := range req.Days {
		row := models.WeeklySchedule{
			Weekday:    d.Weekday,
			Open:       d.Open,
			StartHour:  d.StartHour,
			EndHour:    d.EndHour,
			Lunch:      d.Lunch,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		}

		if err := schedule.ValidateDay(row); err != nil {
			httperr.BadRequest(c, httperr.BusinessCode(err), "Configuración de día inválida.")
			return
		}
		toCreate = append(toCreate, row)
	}

	if err := h.db.Where("1 = 1").Delete(&models.WeeklySchedule{}).Error; err != nil {
		httperr.Internal(c, "failed_to_clear_schedule", "Error al guardar el horario.")
		return
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			httperr.Internal(c, "failed_to_save_schedule", "Error al guardar el horario.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
