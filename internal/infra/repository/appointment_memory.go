package repository

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// AppointmentMemoryRepository keeps appointments in process memory, in
// insertion order. Each method holds the lock for its own duration;
// Transaction holds it across the whole callback.
type AppointmentMemoryRepository struct {
	mu   sync.Mutex
	coll collection
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{}
}

func (r *AppointmentMemoryRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return fn(&memoryTx{coll: &r.coll})
}

func (r *AppointmentMemoryRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().CreateAppointment(ctx, ap)
}

func (r *AppointmentMemoryRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().UpdateAppointment(ctx, ap)
}

func (r *AppointmentMemoryRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().DeleteAppointment(ctx, id)
}

func (r *AppointmentMemoryRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().FindByEmail(ctx, email)
}

func (r *AppointmentMemoryRepository) FindByEmailAndSlot(
	ctx context.Context,
	email string,
	timeSlot string,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().FindByEmailAndSlot(ctx, email, timeSlot)
}

func (r *AppointmentMemoryRepository) HasSlotConflict(
	ctx context.Context,
	doctorName string,
	timeSlot string,
	excludeID uint,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().HasSlotConflict(ctx, doctorName, timeSlot, excludeID)
}

func (r *AppointmentMemoryRepository) ListByDoctor(
	ctx context.Context,
	doctorName string,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().ListByDoctor(ctx, doctorName)
}

func (r *AppointmentMemoryRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().ListAppointments(ctx)
}

func (r *AppointmentMemoryRepository) tx() *memoryTx {
	return &memoryTx{coll: &r.coll}
}

// --------------------------------------------------
// collection (caller holds the lock)
// --------------------------------------------------

type collection struct {
	items  []models.Appointment
	lastID uint
}

func (c *collection) indexOf(match func(ap *models.Appointment) bool) int {
	for i := range c.items {
		if match(&c.items[i]) {
			return i
		}
	}
	return -1
}

// memoryTx is the unlocked view handed to Transaction callbacks.
type memoryTx struct {
	coll *collection
}

func (t *memoryTx) Transaction(
	_ context.Context,
	fn func(tx domain.Repository) error,
) error {
	return fn(t)
}

func (t *memoryTx) CreateAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {
	t.coll.lastID++
	ap.ID = t.coll.lastID
	t.coll.items = append(t.coll.items, *ap)
	return nil
}

func (t *memoryTx) UpdateAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {
	i := t.coll.indexOf(func(cur *models.Appointment) bool {
		return cur.ID == ap.ID
	})
	if i < 0 {
		return domain.ErrRecordNotFound
	}

	t.coll.items[i] = *ap
	return nil
}

func (t *memoryTx) DeleteAppointment(
	_ context.Context,
	id uint,
) error {
	i := t.coll.indexOf(func(cur *models.Appointment) bool {
		return cur.ID == id
	})
	if i < 0 {
		return domain.ErrRecordNotFound
	}

	t.coll.items = append(t.coll.items[:i], t.coll.items[i+1:]...)
	return nil
}

func (t *memoryTx) FindByEmail(
	_ context.Context,
	email string,
) (*models.Appointment, error) {
	return t.first(func(ap *models.Appointment) bool {
		return ap.Email == email
	})
}

func (t *memoryTx) FindByEmailAndSlot(
	_ context.Context,
	email string,
	timeSlot string,
) (*models.Appointment, error) {
	return t.first(func(ap *models.Appointment) bool {
		return ap.Email == email && ap.TimeSlot == timeSlot
	})
}

func (t *memoryTx) HasSlotConflict(
	_ context.Context,
	doctorName string,
	timeSlot string,
	excludeID uint,
) (bool, error) {
	i := t.coll.indexOf(func(ap *models.Appointment) bool {
		return ap.ID != excludeID &&
			ap.DoctorName == doctorName &&
			ap.TimeSlot == timeSlot
	})
	return i >= 0, nil
}

func (t *memoryTx) ListByDoctor(
	_ context.Context,
	doctorName string,
) ([]models.Appointment, error) {
	out := make([]models.Appointment, 0)
	for _, ap := range t.coll.items {
		if ap.DoctorName == doctorName {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (t *memoryTx) ListAppointments(
	_ context.Context,
) ([]models.Appointment, error) {
	out := make([]models.Appointment, len(t.coll.items))
	copy(out, t.coll.items)
	return out, nil
}

// first returns a copy so callers never alias the stored record.
func (t *memoryTx) first(
	match func(ap *models.Appointment) bool,
) (*models.Appointment, error) {
	i := t.coll.indexOf(match)
	if i < 0 {
		return nil, domain.ErrRecordNotFound
	}

	ap := t.coll.items[i]
	return &ap, nil
}

// Compile-time check
var (
	_ domain.Repository = (*AppointmentMemoryRepository)(nil)
	_ domain.Repository = (*memoryTx)(nil)
)
