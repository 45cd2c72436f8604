package models

import "time"

type Barber struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Slug      string `gorm:"size:100;uniqueIndex" json:"slug"`
	Phone     string `gorm:"size:20" json:"phone"`
	Instagram string `gorm:"size:100" json:"instagram"`
	Bio       string `gorm:"size:255" json:"bio"`

	// Active is the admin flag; Available is the barber's own toggle.
	Active    bool `gorm:"default:true" json:"active"`
	Available bool `gorm:"default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
