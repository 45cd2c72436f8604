package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Reference is the public handle customers use to consult or cancel.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	BarberID uint   `gorm:"index:idx_appointment_barber_start" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	StartTime time.Time `gorm:"index:idx_appointment_barber_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Duration and price are frozen from the catalog at booking time;
	// later service edits never change an existing appointment.
	DurationMin int   `json:"duration_min"`
	PriceCents  int64 `json:"price_cents"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	NoShowAt    *time.Time `json:"no_show_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService freezes one selected service's duration and price.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ServiceID     uint `json:"service_id"`

	Position    int    `json:"position"`
	Name        string `gorm:"size:100" json:"name"`
	DurationMin int    `json:"duration_min"`
	PriceCents  int64  `json:"price_cents"`
}
