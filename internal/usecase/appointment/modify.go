package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type ModifyAppointmentInput struct {
	Email            string
	OriginalTimeSlot string
	NewTimeSlot      string
}

type ModifyAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewModifyAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ModifyAppointment {
	return &ModifyAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute moves an appointment to a new slot with the same doctor. Only the
// time slot changes.
//
// The appointment being moved never conflicts with itself, so moving to the
// slot it already holds succeeds and leaves the record as it was.
func (uc *ModifyAppointment) Execute(
	ctx context.Context,
	in ModifyAppointmentInput,
) (*models.Appointment, error) {

	var (
		modified *models.Appointment
		doctor   string
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		// --------------------------------------------------
		// 1. Original appointment
		// --------------------------------------------------
		ap, err := tx.FindByEmailAndSlot(ctx, in.Email, in.OriginalTimeSlot)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrOriginalNotFound
			}
			return err
		}
		doctor = ap.DoctorName

		// --------------------------------------------------
		// 2. New slot must be free for the same doctor
		// --------------------------------------------------
		taken, err := tx.HasSlotConflict(ctx, ap.DoctorName, in.NewTimeSlot, ap.ID)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrNewSlotBooked
		}

		// --------------------------------------------------
		// 3. Move
		// --------------------------------------------------
		ap.TimeSlot = in.NewTimeSlot
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		modified = ap
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrNewSlotBooked) {
			uc.audit.Dispatch(audit.Event{
				Action:     audit.ActionModifyConflict,
				Entity:     audit.EntityAppointment,
				Email:      in.Email,
				DoctorName: doctor,
				TimeSlot:   in.NewTimeSlot,
				Metadata: map[string]string{
					"original_time_slot": in.OriginalTimeSlot,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:     audit.ActionModified,
		Entity:     audit.EntityAppointment,
		EntityID:   &modified.ID,
		Email:      modified.Email,
		DoctorName: modified.DoctorName,
		TimeSlot:   modified.TimeSlot,
		Metadata: map[string]string{
			"original_time_slot": in.OriginalTimeSlot,
		},
	})

	return modified, nil
}
