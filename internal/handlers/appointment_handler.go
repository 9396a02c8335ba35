package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/httpresp"
	"github.com/dermaline/studio-scheduler/internal/middleware"
	ucBooking "github.com/dermaline/studio-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	tz string

	checkUC     *ucBooking.CheckSlot
	createUC    *ucBooking.CreateAppointment
	editUC      *ucBooking.EditAppointment
	depositUC   *ucBooking.RegisterDeposit
	completeUC  *ucBooking.CompleteAppointment
	noShowUC    *ucBooking.MarkNoShow
	cancelUC    *ucBooking.CancelAppointment
	reconfirmUC *ucBooking.SetReconfirmation
	deleteUC    *ucBooking.DeleteAppointment
	listUC      *ucBooking.ListAppointments
}

func NewAppointmentHandler(
	tz string,
	checkUC *ucBooking.CheckSlot,
	createUC *ucBooking.CreateAppointment,
	editUC *ucBooking.EditAppointment,
	depositUC *ucBooking.RegisterDeposit,
	completeUC *ucBooking.CompleteAppointment,
	noShowUC *ucBooking.MarkNoShow,
	cancelUC *ucBooking.CancelAppointment,
	reconfirmUC *ucBooking.SetReconfirmation,
	deleteUC *ucBooking.DeleteAppointment,
	listUC *ucBooking.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		tz:          tz,
		checkUC:     checkUC,
		createUC:    createUC,
		editUC:      editUC,
		depositUC:   depositUC,
		completeUC:  completeUC,
		noShowUC:    noShowUC,
		cancelUC:    cancelUC,
		reconfirmUC: reconfirmUC,
		deleteUC:    deleteUC,
		listUC:      listUC,
	}
}

func actorFrom(c *gin.Context) (uint, string) {
	return c.MustGet(middleware.ContextUserID).(uint),
		c.GetString(middleware.ContextUserName)
}

func (h *AppointmentHandler) writeBusiness(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "":
		httperr.Internal(c, "internal_error", "Error interno.")
	case "time_conflict":
		httperr.Conflict(c, code, "El horario se cruza con otra reserva del especialista.")
	case "lunch_overlap":
		httperr.Conflict(c, code, "El horario cae dentro del refrigerio.")
	case "outside_business_hours":
		httperr.BadRequest(c, code, "Fuera del horario de atención.")
	case "appointment_not_found":
		httperr.NotFound(c, code, "Reserva no encontrada.")
	case "appointment_has_transactions":
		httperr.Forbidden(c, code,
			"La reserva tiene movimientos de caja vinculados; solo un usuario con privilegios puede forzar la eliminación.")
	default:
		httperr.BadRequest(c, code, "Solicitud inválida.")
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentSlotRequest struct {
	Specialist string `json:"specialist" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

type CreateAppointmentRequest struct {
	AppointmentSlotRequest

	ClientDocument string `json:"client_document" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone"`
	ClientSource   string `json:"client_source"`

	ServiceType string `json:"service_type" binding:"required"`
	Procedure   string `json:"procedure"`

	Comment      string `json:"comment"`
	AllowOverlap bool   `json:"allow_overlap"`
}

type EditAppointmentRequest struct {
	AppointmentSlotRequest

	ServiceType string `json:"service_type" binding:"required"`
	Procedure   string `json:"procedure"`
	Comment     string `json:"comment"`

	DepositAmount *float64 `json:"deposit_amount"`
	DepositMethod *string  `json:"deposit_method"`
	DepositRef    *string  `json:"deposit_ref"`

	AllowOverlap bool `json:"allow_overlap"`
}

func (h *AppointmentHandler) slotFrom(c *gin.Context, req AppointmentSlotRequest) (domain.Candidate, bool) {
	start, err := parseDateTime(h.tz, req.Date, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
		return domain.Candidate{}, false
	}
	end, err := parseDateTime(h.tz, req.Date, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
		return domain.Candidate{}, false
	}

	return domain.Candidate{
		Specialist: req.Specialist,
		Start:      start,
		End:        end,
	}, true
}

// ======================================================
// CHECK (pure, no mutation)
// ======================================================

func (h *AppointmentHandler) Check(c *gin.Context) {
	var req AppointmentSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	candidate, ok := h.slotFrom(c, req)
	if !ok {
		return
	}

	var excludeID uint
	if v := c.Query("exclude_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			excludeID = uint(id)
		}
	}

	check, err := h.checkUC.Execute(c.Request.Context(), candidate, excludeID)
	if err != nil {
		h.writeBusiness(c, err)
		return
	}

	c.JSON(200, check)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actorID, actorName := actorFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	candidate, ok := h.slotFrom(c, req.AppointmentSlotRequest)
	if !ok {
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		Specialist:     candidate.Specialist,
		ClientDocument: req.ClientDocument,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientSource:   req.ClientSource,
		ServiceType:    req.ServiceType,
		Procedure:      req.Procedure,
		Start:          candidate.Start,
		End:            candidate.End,
		Comment:        req.Comment,
		AllowOverlap:   req.AllowOverlap,
		ActorID:        actorID,
		ActorName:      actorName,
	})
	if err != nil {
		h.writeBusiness(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// EDIT
// ======================================================

func (h *AppointmentHandler) Edit(c *gin.Context) {
	actorID, actorName := actorFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	candidate, ok := h.slotFrom(c, req.AppointmentSlotRequest)
	if !ok {
		return
	}

	ap, err := h.editUC.Execute(c.Request.Context(), ucBooking.EditAppointmentInput{
		AppointmentID: id,
		Specialist:    candidate.Specialist,
		ServiceType:   req.ServiceType,
		Procedure:     req.Procedure,
		Start:         candidate.Start,
		End:           candidate.End,
		Comment:       req.Comment,
		DepositAmount: req.DepositAmount,
		DepositMethod: req.DepositMethod,
		DepositRef:    req.DepositRef,
		AllowOverlap:  req.AllowOverlap,
		ActorID:       actorID,
		ActorName:     actorName,
	})
	if err != nil {
		h.writeBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// DEPOSIT
// ======================================================

type DepositRequest struct {
	Amount  *float64 `json:"amount" binding:"required"`
	Method  string   `json:"method" binding:"required"`
	RefCode string   `json:"ref_code"`
}

func (h *AppointmentHandler) RegisterDeposit(c *gin.Context) {
	actorID, actorName := actorFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.depositUC.Execute(c.Request.Context(), ucBooking.RegisterDepositInput{
		AppointmentID: id,
		Amount:        *req.Amount,
		Method:        req.Method,
		RefCode:       req.RefCode,
		ActorID:       actorID,
		ActorName:     actorName,
	})
	if err != nil {
		h.writeBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteRequest struct {
	ActualDurationMin int `json:"actual_duration_min" binding:"required"`

	RemainingAmount *float64 `json:"remaining_amount"`
	RemainingMethod string   `json:"remaining_method"`
	CreamAmount     *float64 `json:"cream_amount"`
	CreamMethod     string   `json:"cream_method"`
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	actorID, actorName := actorFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), ucBooking.CompleteAppointmentInput{
		AppointmentID:     id,
		ActualDurationMin: req.ActualDurationMin,
		RemainingAmount:   req.RemainingAmount,
		RemainingMethod:   req.RemainingMethod,
		CreamAmount:       req.CreamAmount,
		CreamMethod:       req.CreamMethod,
		ActorID:           actorID,
		ActorName:         actorName,
	})
	if err != nil {
		h.writeBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// NO-SHOW / CANCEL / RECONFIRM
// ======================================================

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	actorID, actorName := actorFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.noShowUC.Execute(c.Request.Context(), id, actorID, actorName)
	if err != nil {
		h.writeBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actorID, actorName := actorFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), id, actorID, actorName)
	if err != nil {
		h.writeBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

type ReconfirmRequest struct {
	Value string `json:"value"`
}

func (h *AppointmentHandler) Reconfirm(c *gin.Context) {
	actorID, actorName := actorFrom(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ReconfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.reconfirmUC.Execute(c.Request.Context(), id, req.Value, actorID, actorName)
	if err != nil {
		h.writeBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	actorID, actorName := actorFrom(c)
	privileged := c.GetBool(middleware.ContextPrivileged)

	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.deleteUC.Execute(c.Request.Context(), id, ucBooking.Actor{
		ID:         actorID,
		Name:       actorName,
		Privileged: privileged,
	})
	if err != nil {
		h.writeBusiness(c, err)
		return
	}

	c.JSON(200, gin.H{"status": "deleted"})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Fecha obligatoria.")
		return
	}

	date, err := parseDate(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	out, err := h.listUC.ByDate(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "Error al listar reservas.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	out, err := h.listUC.ByMonth(c.Request.Context(), year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "Error al listar reservas.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

func (h *AppointmentHandler) Occupancy(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Fecha obligatoria.")
		return
	}

	date, err := parseDate(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	out, err := h.listUC.Occupancy(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_compute_occupancy", "Error al calcular ocupación.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// HELPERS
// ======================================================

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
