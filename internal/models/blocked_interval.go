package models

import "time"

const (
	BlockKindLunch    = "lunch"
	BlockKindBreak    = "break"
	BlockKindPersonal = "personal"
	BlockKindHoliday  = "holiday"
	BlockKindOther    = "other"
)

// BlockedInterval is an admin-defined window during which no bookings are
// allowed. BarberID nil means the block applies to every barber.
type BlockedInterval struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	BarberID *uint `gorm:"index" json:"barber_id"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Kind  string `gorm:"size:20;default:'other'" json:"kind"`
	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
