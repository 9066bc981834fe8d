package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// ErrRecordNotFound is returned by Repository lookups that match nothing.
var ErrRecordNotFound = errors.New("record not found")

// Repository is the ordered appointment collection. Lookups return the first
// match in insertion order.
type Repository interface {
	// Transaction runs fn with exclusive access to the collection. Every
	// read-then-write sequence must go through it.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Appointment (create / change) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Appointment (lookup) --------
	FindByEmail(
		ctx context.Context,
		email string,
	) (*models.Appointment, error)

	FindByEmailAndSlot(
		ctx context.Context,
		email string,
		timeSlot string,
	) (*models.Appointment, error)

	// HasSlotConflict reports whether a record other than excludeID holds
	// timeSlot for doctorName. excludeID 0 excludes nothing.
	HasSlotConflict(
		ctx context.Context,
		doctorName string,
		timeSlot string,
		excludeID uint,
	) (bool, error)

	ListByDoctor(
		ctx context.Context,
		doctorName string,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)
}
