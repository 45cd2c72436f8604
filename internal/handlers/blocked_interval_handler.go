package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamosbarber/booking-engine/internal/audit"
	"github.com/chamosbarber/booking-engine/internal/cache"
	"github.com/chamosbarber/booking-engine/internal/httpresp"
	"github.com/chamosbarber/booking-engine/internal/middleware"
	"github.com/chamosbarber/booking-engine/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BlockedIntervalHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewBlockedIntervalHandler(
	db *gorm.DB,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
) *BlockedIntervalHandler {
	return &BlockedIntervalHandler{
		db:    db,
		cache: availCache,
		audit: auditDispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBlockedIntervalRequest struct {
	BarberID *uint  `json:"barber_id"` // nil = toda la barbería
	Date     string `json:"date" binding:"required"`
	Start    string `json:"start" binding:"required"`

	// Either an explicit end time or a duration in minutes.
	End         string `json:"end"`
	DurationMin int    `json:"duration_min"`

	Kind  string `json:"kind"`
	Notes string `json:"notes"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BlockedIntervalHandler) List(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	q := h.db.Order("start_time ASC")

	if fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("end_time > ?", from)
		}
	}
	if toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("start_time < ?", to.Add(24*time.Hour))
		}
	}

	var blocks []models.BlockedInterval
	if err := q.Find(&blocks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_blocked_intervals"})
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *BlockedIntervalHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop_not_found"})
		return
	}

	var req CreateBlockedIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start, err := parseDateTimeInShop(&shop, req.Date, req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date_or_time"})
		return
	}

	var end time.Time
	switch {
	case req.End != "":
		end, err = parseDateTimeInShop(&shop, req.Date, req.End)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date_or_time"})
			return
		}
	case req.DurationMin > 0:
		end = start.Add(time.Duration(req.DurationMin) * time.Minute)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_end_or_duration"})
		return
	}

	if !start.Before(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_interval"})
		return
	}

	kind := req.Kind
	if kind == "" {
		kind = models.BlockKindOther
	}

	block := models.BlockedInterval{
		BarberID:  req.BarberID,
		StartTime: start,
		EndTime:   end,
		Kind:      kind,
		Notes:     req.Notes,
	}

	if err := h.db.Create(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_blocked_interval"})
		return
	}

	h.invalidateDays(c, &block, &shop)

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "blocked_interval_created",
		Entity:   "blocked_interval",
		EntityID: &block.ID,
	})

	httpresp.Created(c, block)
}

func (h *BlockedIntervalHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop_not_found"})
		return
	}

	var block models.BlockedInterval
	if err := h.db.First(&block, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "blocked_interval_not_found"})
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_blocked_interval"})
		return
	}

	h.invalidateDays(c, &block, &shop)

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "blocked_interval_deleted",
		Entity:   "blocked_interval",
		EntityID: &block.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// invalidateDays bumps the availability cache for every barber/day the
// block touches. Shop-wide blocks invalidate all active barbers.
func (h *BlockedIntervalHandler) invalidateDays(
	c *gin.Context,
	block *models.BlockedInterval,
	shop *models.Shop,
) {
	var barberIDs []uint
	if block.BarberID != nil {
		barberIDs = []uint{*block.BarberID}
	} else {
		h.db.Model(&models.Barber{}).
			Where("active = true").
			Pluck("id", &barberIDs)
	}

	loc := locationFromShop(shop)
	for day := block.StartTime.In(loc); !day.After(block.EndTime.In(loc)); day = day.AddDate(0, 0, 1) {
		for _, id := range barberIDs {
			h.cache.Invalidate(c.Request.Context(), id, day.Format("2006-01-02"))
		}
	}
}
