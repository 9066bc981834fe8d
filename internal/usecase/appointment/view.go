package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type ViewAppointment struct {
	repo domain.Repository
}

func NewViewAppointment(repo domain.Repository) *ViewAppointment {
	return &ViewAppointment{repo: repo}
}

// Execute returns the first appointment booked under email.
func (uc *ViewAppointment) Execute(
	ctx context.Context,
	email string,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}

	return ap, nil
}
