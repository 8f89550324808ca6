package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `gorm:"index;not null" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uint   `gorm:"index;not null" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	SlotID *uint `gorm:"index" json:"slot_id"`
	Slot   *Slot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"slot,omitempty"`

	ScheduledAt time.Time `gorm:"index;not null" json:"scheduled_at"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
