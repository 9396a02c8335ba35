package dto

import "time"

type AppointmentListDTO struct {
	ID             uint      `json:"id"`
	BookingCode    *string   `json:"booking_code"`
	Specialist     string    `json:"specialist"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	Reconfirmation string    `json:"reconfirmation"`
	ClientName     string    `json:"client_name"`
	ClientDocument string    `json:"client_document"`
	ServiceType    string    `json:"service_type"`
	Procedure      string    `json:"procedure"`
	HasDeposit     bool      `json:"has_deposit"`
}

type SpecialistOccupancyDTO struct {
	Specialist    string `json:"specialist"`
	BookedMinutes int    `json:"booked_minutes"`
	OpenMinutes   int    `json:"open_minutes"`
}
