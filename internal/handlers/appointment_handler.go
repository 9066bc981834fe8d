package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/dto"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/httpresp"
	"github.com/BruksfildServices01/clinic-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book   *ucAppointment.BookAppointment
	view   *ucAppointment.ViewAppointment
	list   *ucAppointment.ListAppointmentsByDoctor
	cancel *ucAppointment.CancelAppointment
	modify *ucAppointment.ModifyAppointment

	roster   *domain.Roster
	presence *validators.Presence
	log      *zap.Logger
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	view *ucAppointment.ViewAppointment,
	list *ucAppointment.ListAppointmentsByDoctor,
	cancel *ucAppointment.CancelAppointment,
	modify *ucAppointment.ModifyAppointment,
	roster *domain.Roster,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:     book,
		view:     view,
		list:     list,
		cancel:   cancel,
		modify:   modify,
		roster:   roster,
		presence: validators.NewPresence(),
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required"`
	TimeSlot   string `json:"timeSlot" validate:"required"`
	DoctorName string `json:"doctorName" validate:"required"`
}

type ViewAppointmentQuery struct {
	Email string `form:"email" validate:"required"`
}

type CancelAppointmentQuery struct {
	Email    string `form:"email" validate:"required"`
	TimeSlot string `form:"timeSlot" validate:"required"`
}

type ModifyAppointmentRequest struct {
	Email            string `json:"email" validate:"required"`
	OriginalTimeSlot string `json:"originalTimeSlot" validate:"required"`
	NewTimeSlot      string `json:"newTimeSlot" validate:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if !h.bindBody(c, &req) {
		return
	}
	if !h.requireKnownDoctor(c, req.DoctorName) {
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		TimeSlot:   req.TimeSlot,
		DoctorName: req.DoctorName,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	httpresp.Created(c, dto.AppointmentResultDTO{
		Message:     dto.MessageBooked,
		Appointment: *ap,
	})
}

// ======================================================
// VIEW
// ======================================================

func (h *AppointmentHandler) View(c *gin.Context) {
	var q ViewAppointmentQuery
	if !h.bindQuery(c, &q) {
		return
	}

	ap, err := h.view.Execute(c.Request.Context(), q.Email)
	if err != nil {
		h.fail(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByDoctor(c *gin.Context) {
	doctorName := c.Param("doctorName")
	if !h.requireKnownDoctor(c, doctorName) {
		return
	}

	appointments, err := h.list.Execute(c.Request.Context(), doctorName)
	if err != nil {
		h.fail(c, err)
		return
	}

	httpresp.OK(c, dto.DoctorAppointmentsDTO{Appointments: appointments})
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var q CancelAppointmentQuery
	if !h.bindQuery(c, &q) {
		return
	}

	if _, err := h.cancel.Execute(c.Request.Context(), q.Email, q.TimeSlot); err != nil {
		h.fail(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// MODIFY
// ======================================================

func (h *AppointmentHandler) Modify(c *gin.Context) {
	var req ModifyAppointmentRequest
	if !h.bindBody(c, &req) {
		return
	}

	ap, err := h.modify.Execute(c.Request.Context(), ucAppointment.ModifyAppointmentInput{
		Email:            req.Email,
		OriginalTimeSlot: req.OriginalTimeSlot,
		NewTimeSlot:      req.NewTimeSlot,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	httpresp.OK(c, dto.AppointmentResultDTO{
		Message:     dto.MessageUpdated,
		Appointment: *ap,
	})
}

// ======================================================
// HELPERS
// ======================================================

// bindBody decodes a JSON body and checks required fields. An empty body is
// treated as an empty object so the caller gets the list of missing fields.
func (h *AppointmentHandler) bindBody(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Invalid JSON body")
		return false
	}
	return h.requirePresent(c, req, "missing_fields", "Missing fields")
}

func (h *AppointmentHandler) bindQuery(c *gin.Context, q any) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid query parameters")
		return false
	}
	return h.requirePresent(c, q, "missing_query_parameters", "Missing query parameters")
}

func (h *AppointmentHandler) requirePresent(c *gin.Context, s any, code, label string) bool {
	missing, err := h.presence.Missing(s)
	if err != nil {
		h.fail(c, err)
		return false
	}
	if len(missing) > 0 {
		httperr.BadRequest(c, code, fmt.Sprintf("%s: %s", label, strings.Join(missing, ", ")))
		return false
	}
	return true
}

func (h *AppointmentHandler) requireKnownDoctor(c *gin.Context, name string) bool {
	if name == "" {
		httperr.BadRequest(c, "missing_doctor_name", "Doctor name is required")
		return false
	}
	if !h.roster.Contains(name) {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found")
		return false
	}
	return true
}

func (h *AppointmentHandler) fail(c *gin.Context, err error) {
	status := httperr.FromError(c, err)

	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	}
	if status >= 500 {
		h.log.Error("appointment request failed", fields...)
		return
	}
	h.log.Info("appointment request rejected", fields...)
}
