package appointment

import "github.com/BruksfildServices01/clinic-booking/internal/httperr"

const (
	CodeAppointmentNotFound = "appointment_not_found"
	CodeOriginalNotFound    = "original_appointment_not_found"
	CodeSlotConflict        = "time_slot_conflict"
	CodeNewSlotConflict     = "new_time_slot_conflict"
)

var (
	ErrAppointmentNotFound = httperr.ErrNotFound(CodeAppointmentNotFound, "Appointment not found")
	ErrOriginalNotFound    = httperr.ErrNotFound(CodeOriginalNotFound, "Original appointment not found")
	ErrSlotAlreadyBooked   = httperr.ErrConflict(CodeSlotConflict, "Time slot already booked")
	ErrNewSlotBooked       = httperr.ErrConflict(CodeNewSlotConflict, "New time slot already booked")
)
