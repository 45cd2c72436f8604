package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/chamosbarber/booking-engine/internal/domain/scheduling"
	"github.com/chamosbarber/booking-engine/internal/httperr"
	"github.com/chamosbarber/booking-engine/internal/models"
	"github.com/chamosbarber/booking-engine/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *booking.GetAvailability
	commitUC       *booking.CommitBooking
	lookupUC       *booking.LookupAppointmentsByPhone
	cancelUC       *booking.CancelByReference
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *booking.GetAvailability,
	commitUC *booking.CommitBooking,
	lookupUC *booking.LookupAppointmentsByPhone,
	cancelUC *booking.CancelByReference,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		commitUC:       commitUC,
		lookupUC:       lookupUC,
		cancelUC:       cancelUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID   uint   `json:"barber_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

type PublicCancelRequest struct {
	Phone string `json:"phone" binding:"required"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("active = true")

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Where("active = true AND available = true").
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"barbers": barbers})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	barberIDStr := c.Query("barber_id")
	serviceIDsStr := c.Query("service_ids")

	if dateStr == "" || barberIDStr == "" || serviceIDsStr == "" {
		httperr.BadRequest(c, "missing_params", "Fecha, barbero y servicios son obligatorios.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
		return
	}

	serviceIDs, err := parseServiceIDs(serviceIDsStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_ids", "Servicios inválidos.")
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Barbería no configurada.")
		return
	}

	date, err := parseDateInShop(&shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	availability, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarberID:   uint(barberID),
			ServiceIDs: serviceIDs,
			Date:       date,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "unknown_service"):
			httperr.BadRequest(c, "unknown_service", "Servicio inválido.")
		case httperr.IsBusiness(err, "invalid_service_selection"):
			httperr.BadRequest(c, "invalid_service_selection", "Selección de servicios inválida.")
		case httperr.IsStorage(err):
			httperr.Internal(c, "storage_unavailable", "Servicio no disponible. Intenta de nuevo.")
		default:
			httperr.Internal(c, "availability_failed", "Error al calcular horarios.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   dateStr,
		"slots":  availability.Slots,
		"reason": availability.Reason,
	})
}

////////////////////////////////////////////////////////
// CREATE / CONSULT / CANCEL
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
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

	c.JSON(http.StatusCreated, gin.H{
		"appointment": ap,
		"reference":   ap.Reference,
	})
}

func (h *PublicHandler) LookupByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		httperr.BadRequest(c, "missing_phone", "Teléfono obligatorio.")
		return
	}

	appointments, err := h.lookupUC.Execute(c.Request.Context(), phone)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_phone") {
			httperr.BadRequest(c, "invalid_phone", "Teléfono inválido.")
			return
		}
		httperr.Internal(c, "lookup_failed", "Error al consultar citas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (h *PublicHandler) CancelByReference(c *gin.Context) {
	reference := c.Param("reference")

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), reference, req.Phone)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "La cita ya no puede cancelarse.")
		default:
			httperr.Internal(c, "cancel_failed", "Error al cancelar la cita.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "cancelled",
		"appointment": ap,
	})
}

func parseServiceIDs(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, uint(id))
	}
	return out, nil
}
