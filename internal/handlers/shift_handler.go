package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamosbarber/booking-engine/internal/audit"
	"github.com/chamosbarber/booking-engine/internal/cache"
	"github.com/chamosbarber/booking-engine/internal/middleware"
	"github.com/chamosbarber/booking-engine/internal/models"
)

// A grade semanal vale para todo dia futuro; invalidamos o horizonte
// de reserva inteiro em vez de um único dia.
const shiftCacheHorizonDays = 28

type ShiftHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewShiftHandler(
	db *gorm.DB,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
) *ShiftHandler {
	return &ShiftHandler{db: db, cache: availCache, audit: auditDispatcher}
}

type ShiftConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ShiftUpdateRequest struct {
	Days []ShiftConfig `json:"days" binding:"required"`
}

func (h *ShiftHandler) Get(c *gin.Context) {
	barberID := c.Param("id")

	var shifts []models.Shift
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&shifts).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_shifts"})
		return
	}

	c.JSON(http.StatusOK, shifts)
}

// Update replaces a barber's weekly shift grid in one shot, the way the
// admin shift configurator submits it.
func (h *ShiftHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barberIDStr := c.Param("id")

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop_not_found"})
		return
	}

	var barber models.Barber
	if err := h.db.
		Where("id = ? AND shop_id = ?", barberIDStr, shopID).
		First(&barber).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
		return
	}

	var req ShiftUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Days {
		if d.Active && !validShiftTimes(d.StartTime, d.EndTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_shift_times"})
			return
		}
	}

	if err := h.db.Where("barber_id = ?", barber.ID).Delete(&models.Shift{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_shifts"})
		return
	}

	var toCreate []models.Shift
	for _, d := range req.Days {
		toCreate = append(toCreate, models.Shift{
			BarberID:  barber.ID,
			Weekday:   d.Weekday,
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_shifts"})
			return
		}
	}

	for _, day := range upcomingDays(nowInShop(&shop), shiftCacheHorizonDays) {
		h.cache.Invalidate(c.Request.Context(), barber.ID, day)
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "shifts_updated",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// upcomingDays enumera as chaves de dia a partir de from, inclusivo.
func upcomingDays(from time.Time, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, from.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return out
}

func validShiftTimes(start, end string) bool {
	s, err1 := time.Parse("15:04", start)
	e, err2 := time.Parse("15:04", end)
	return err1 == nil && err2 == nil && s.Before(e)
}
