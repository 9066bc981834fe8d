package models

// Appointment is a booked visit. ID is assigned by the store and identifies
// the record internally; clients address appointments by email and time slot.
type Appointment struct {
	ID uint `json:"-"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	TimeSlot   string `json:"timeSlot"`
	DoctorName string `json:"doctorName"`
}
