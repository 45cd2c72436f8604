package models

import "time"

// Shift is a recurring weekly working interval. Times are "15:04" strings
// local to the shop timezone; breaks are modelled as BlockedIntervals.
type Shift struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_shift_barber_weekday" json:"barber_id"`

	Weekday int `gorm:"index:idx_shift_barber_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
