package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/httpresp"
	"github.com/chamosbarber/booking-engine/internal/middleware"
	"github.com/chamosbarber/booking-engine/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	commitUC      *booking.CommitBooking
	completeUC    *booking.CompleteAppointment
	cancelUC      *booking.CancelAppointment
	noShowUC      *booking.MarkNoShow
	listByDateUC  *booking.ListAppointmentsByDate
	listByMonthUC *booking.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	commitUC *booking.CommitBooking,
	completeUC *booking.CompleteAppointment,
	cancelUC *booking.CancelAppointment,
	noShowUC *booking.MarkNoShow,
	listByDateUC *booking.ListAppointmentsByDate,
	listByMonthUC *booking.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		commitUC:      commitUC,
		completeUC:    completeUC,
		cancelUC:      cancelUC,
		noShowUC:      noShowUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID   uint   `json:"barber_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.commitUC.Execute(c.Request.Context(), booking.CommitBookingInput{
		BarberID:      req.BarberID,
		ServiceIDs:    req.ServiceIDs,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LISTINGS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
		return
	}

	dateStr := c.Query("date")
	date, err := parseDateInShop(nil, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), barberID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, barberID, ok := pathAppointment(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), userID, barberID, appointmentID)
	if err != nil {
		writeStateError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, barberID, ok := pathAppointment(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), userID, barberID, appointmentID)
	if err != nil {
		writeStateError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, barberID, ok := pathAppointment(c)
	if !ok {
		return
	}

	ap, err := h.noShowUC.Execute(c.Request.Context(), userID, barberID, appointmentID)
	if err != nil {
		writeStateError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// HELPERS
// ======================================================

func queryUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func pathAppointment(c *gin.Context) (appointmentID uint, barberID uint, ok bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Cita inválida.")
		return 0, 0, false
	}

	barberID, okQ := queryUint(c, "barber_id")
	if !okQ {
		httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
		return 0, 0, false
	}

	return uint(id), barberID, true
}

func writeStateError(c *gin.Context, err error) {
	switch httperr.Code(err) {
	case "appointment_not_found":
		httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "La cita no admite ese cambio de estado.")
	default:
		httperr.Internal(c, "appointment_update_failed", "Error al actualizar la cita.")
	}
}

// Mensajes de la taxonomía de reserva. overlap_conflict nunca llega
// aquí: el coordinador lo traduce a slot_no_longer_available.
var bookingErrorMessages = map[string]string{
	"invalid_date_or_time":      "Fecha u hora inválida.",
	"too_soon":                  "El horario ya no está disponible por antelación mínima.",
	"unknown_service":           "Servicio inválido.",
	"invalid_service_selection": "Selección de servicios inválida.",
	"barber_not_found":          "Barbero no encontrado.",
	"barber_unavailable":        "El barbero no está recibiendo reservas.",
	"outside_working_hours":     "Fuera del horario de atención.",
	"invalid_phone":             "Teléfono inválido.",
	"booking_limit_reached":     "Límite de citas activas alcanzado.",
}

func writeBookingError(c *gin.Context, err error) {
	code := httperr.Code(err)

	if code == "slot_no_longer_available" {
		httperr.Conflict(c, code, "El horario acaba de ser tomado. Elige otro.")
		return
	}

	if msg, ok := bookingErrorMessages[code]; ok {
		httperr.BadRequest(c, code, msg)
		return
	}

	if httperr.IsStorage(err) {
		httperr.Internal(c, "storage_unavailable", "Servicio no disponible. Intenta de nuevo.")
		return
	}

	httperr.Internal(c, "booking_failed", "Error al crear la cita.")
}
