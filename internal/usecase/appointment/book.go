package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	FirstName  string
	LastName   string
	Email      string
	TimeSlot   string
	DoctorName string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute appends a new appointment unless the doctor already has one in
// the requested slot. Fields are assumed present and the doctor known.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	var booked *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		taken, err := tx.HasSlotConflict(ctx, in.DoctorName, in.TimeSlot, 0)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSlotAlreadyBooked
		}

		ap := &models.Appointment{
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			Email:      in.Email,
			TimeSlot:   in.TimeSlot,
			DoctorName: in.DoctorName,
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		booked = ap
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrSlotAlreadyBooked) {
			uc.audit.Dispatch(audit.Event{
				Action:     audit.ActionBookingConflict,
				Entity:     audit.EntityAppointment,
				Email:      in.Email,
				DoctorName: in.DoctorName,
				TimeSlot:   in.TimeSlot,
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:     audit.ActionBooked,
		Entity:     audit.EntityAppointment,
		EntityID:   &booked.ID,
		Email:      booked.Email,
		DoctorName: booked.DoctorName,
		TimeSlot:   booked.TimeSlot,
	})

	return booked, nil
}
