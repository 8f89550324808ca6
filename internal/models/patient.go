package models

import "time"

type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:120;not null" json:"name"`
	Email string `gorm:"size:120;uniqueIndex" json:"email"`
	Phone string `gorm:"size:30" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
