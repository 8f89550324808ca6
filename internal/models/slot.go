package models

import "time"

// Slot is one fixed-duration booking unit generated from an availability
// window. Available must be true iff no non-terminal appointment references
// the slot; every write that touches it runs inside the same transaction as
// the appointment write.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WindowID uint               `gorm:"index;not null" json:"window_id"`
	Window   AvailabilityWindow `gorm:"foreignKey:WindowID;constraint:OnDelete:CASCADE;" json:"-"`

	StartTime time.Time `gorm:"index;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Available bool `gorm:"default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
