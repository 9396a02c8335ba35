package models

import "time"

// Cliente identificado por su documento (DNI). Sin login propio.
type Client struct {
	Document string `gorm:"primaryKey;size:20" json:"document"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Phone  string `gorm:"size:20" json:"phone"`
	Source string `gorm:"size:50" json:"source"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
