package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"salon-booking-api/internal/metrics"
	"salon-booking-api/internal/model"
	"salon-booking-api/internal/slots"
	"salon-booking-api/internal/store"
)

// Store is the persistence contract the services run against. The pgx store
// satisfies it; tests use an in-memory fake that models the same slot
// exclusivity constraint.
type Store interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	HasSlotConflict(ctx context.Context, date time.Time, timeSlot string, blocking []model.Status) (bool, error)
	CancelPending(ctx context.Context, id string) (*model.Appointment, error)
	SetStatus(ctx context.Context, id string, status model.Status) (*model.Appointment, error)
	Reschedule(ctx context.Context, id string, date time.Time, timeSlot string, status *model.Status) (*model.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]model.Appointment, error)
	ListAll(ctx context.Context, f store.ListFilter) ([]model.AppointmentWithOwner, error)
	CountStats(ctx context.Context, today time.Time) (*store.Stats, error)
}

// Policy decides which statuses occupy a slot for the advisory conflict
// check. Only PENDING blocks by default; whether CONFIRMED should also block
// is a business question, so it is a knob rather than a hardcoded answer.
// Note the storage constraint backstops only the PENDING case.
type Policy struct {
	BlockingStatuses []model.Status
}

func DefaultPolicy() Policy {
	return Policy{BlockingStatuses: []model.Status{model.StatusPending}}
}

func (p Policy) WithConfirmedBlocking() Policy {
	return Policy{BlockingStatuses: []model.Status{model.StatusPending, model.StatusConfirmed}}
}

// Service handles user-facing booking: create, cancel, list own.
type Service struct {
	store   Store
	policy  Policy
	metrics *metrics.BookingMetrics
	log     *slog.Logger
}

func NewService(st Store, policy Policy, m *metrics.BookingMetrics, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: st, policy: policy, metrics: m, log: log}
}

// Create books a slot for the principal. The conflict read is advisory; the
// store's unique constraint is what actually guarantees one winner when two
// requests race for the same slot.
func (s *Service) Create(ctx context.Context, p model.Principal, date, timeSlot, note string) (*model.Appointment, error) {
	if date == "" || timeSlot == "" {
		return nil, validation("date and time slot are required")
	}
	if !slots.Valid(timeSlot) {
		return nil, validation("time slot is not offered")
	}
	day, err := slots.ParseDate(date)
	if err != nil {
		return nil, validation("date must be formatted as YYYY-MM-DD")
	}

	taken, err := s.store.HasSlotConflict(ctx, day, timeSlot, s.policy.BlockingStatuses)
	if err != nil {
		return nil, persistence(err)
	}
	if taken {
		s.metrics.ObserveConflict()
		return nil, slotUnavailable()
	}

	a := &model.Appointment{
		ID:       uuid.New().String(),
		UserID:   p.ID,
		Date:     day,
		TimeSlot: timeSlot,
		Note:     note,
		Status:   model.StatusPending,
	}
	if err := s.store.CreateAppointment(ctx, a); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			// constraint caught a race the advisory read missed
			s.metrics.ObserveConflict()
			return nil, slotUnavailable()
		}
		return nil, persistence(err)
	}

	s.metrics.ObserveCreated()
	s.log.Info("appointment booked", "id", a.ID, "user_id", p.ID, "date", day.Format("2006-01-02"), "slot", timeSlot)
	return a, nil
}

// Cancel is the owner's only self-service transition: PENDING -> CANCELLED.
func (s *Service) Cancel(ctx context.Context, p model.Principal, id string) (*model.Appointment, error) {
	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound()
		}
		return nil, persistence(err)
	}
	if err := CheckOwnerCancel(p, a); err != nil {
		return nil, err
	}

	updated, err := s.store.CancelPending(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotPending) {
			// status moved between our read and the conditional write
			return nil, invalidState("this appointment can no longer be cancelled")
		}
		return nil, persistence(err)
	}

	s.metrics.ObserveCancelled()
	s.log.Info("appointment cancelled", "id", id, "user_id", p.ID)
	return updated, nil
}

// ListMine returns the principal's appointments, most recent day first,
// chronological within a day.
func (s *Service) ListMine(ctx context.Context, p model.Principal) ([]model.Appointment, error) {
	out, err := s.store.ListByUser(ctx, p.ID)
	if err != nil {
		return nil, persistence(err)
	}
	return out, nil
}
