package models

import "time"

// AvailabilityWindow is a doctor's recurring weekly block of bookable time.
// StartTime/EndTime anchor the wall-clock range the slots are derived from.
type AvailabilityWindow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint   `gorm:"index;not null" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	DayOfWeek string `gorm:"size:10;not null" json:"day_of_week"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	SlotDurationMin int  `gorm:"default:30" json:"slot_duration_min"`
	Active          bool `gorm:"default:true" json:"active"`

	Slots []Slot `gorm:"foreignKey:WindowID;constraint:OnDelete:CASCADE;" json:"slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
