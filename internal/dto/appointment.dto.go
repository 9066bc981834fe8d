package dto

import "github.com/BruksfildServices01/clinic-booking/internal/models"

const (
	MessageBooked    = "Appointment booked"
	MessageUpdated   = "Appointment updated"
	MessageCancelled = "Appointment cancelled"
)

type AppointmentResultDTO struct {
	Message     string             `json:"message"`
	Appointment models.Appointment `json:"appointment"`
}

type DoctorAppointmentsDTO struct {
	Appointments []models.Appointment `json:"appointments"`
}
