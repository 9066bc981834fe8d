package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type ListAppointmentsByDoctor struct {
	repo domain.Repository
}

func NewListAppointmentsByDoctor(
	repo domain.Repository,
) *ListAppointmentsByDoctor {
	return &ListAppointmentsByDoctor{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDoctor) Execute(
	ctx context.Context,
	doctorName string,
) ([]models.Appointment, error) {

	appointments, err := uc.repo.ListByDoctor(ctx, doctorName)
	if err != nil {
		return nil, err
	}

	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}
