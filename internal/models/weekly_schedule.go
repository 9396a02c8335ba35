package models

import "time"

// One row per ISO weekday (1=Monday .. 7=Sunday). Hours are whole hours,
// half-open [StartHour, EndHour).
type WeeklySchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday int  `gorm:"uniqueIndex" json:"weekday"`
	Open    bool `json:"open"`

	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`

	Lunch      bool `json:"lunch"`
	LunchStart int  `json:"lunch_start"`
	LunchEnd   int  `json:"lunch_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
