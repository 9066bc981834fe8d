package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the first appointment matching both email and time slot
// and returns it.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	email string,
	timeSlot string,
) (*models.Appointment, error) {

	var cancelled *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.FindByEmailAndSlot(ctx, email, timeSlot)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrAppointmentNotFound
			}
			return err
		}

		if err := tx.DeleteAppointment(ctx, ap.ID); err != nil {
			return err
		}

		cancelled = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:     audit.ActionCancelled,
		Entity:     audit.EntityAppointment,
		EntityID:   &cancelled.ID,
		Email:      cancelled.Email,
		DoctorName: cancelled.DoctorName,
		TimeSlot:   cancelled.TimeSlot,
	})

	return cancelled, nil
}
