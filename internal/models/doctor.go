package models

import "time"

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:120;not null" json:"name"`
	Specialty string `gorm:"size:80" json:"specialty"`
	Email     string `gorm:"size:120;uniqueIndex" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
