package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"salon-booking-api/internal/metrics"
	"salon-booking-api/internal/model"
	"salon-booking-api/internal/slots"
	"salon-booking-api/internal/store"
)

// AdminService handles staff-side mutation: listing every appointment with
// its owner, forcing status transitions, rescheduling, and stats.
type AdminService struct {
	store   Store
	metrics *metrics.BookingMetrics
	log     *slog.Logger
}

func NewAdminService(st Store, m *metrics.BookingMetrics, log *slog.Logger) *AdminService {
	if log == nil {
		log = slog.Default()
	}
	return &AdminService{store: st, metrics: m, log: log}
}

// ListAll returns every appointment joined with owner name/email, ordered
// date desc / slot asc for most-recent-first browsing.
func (s *AdminService) ListAll(ctx context.Context, p model.Principal, f store.ListFilter) ([]model.AppointmentWithOwner, error) {
	if err := CheckAdminTransition(p); err != nil {
		return nil, err
	}
	out, err := s.store.ListAll(ctx, f)
	if err != nil {
		return nil, persistence(err)
	}
	return out, nil
}

// SetStatus forces an appointment into any of the four statuses.
func (s *AdminService) SetStatus(ctx context.Context, p model.Principal, id, status string) (*model.Appointment, error) {
	if err := CheckAdminTransition(p); err != nil {
		return nil, err
	}
	st, ok := model.ParseStatus(status)
	if !ok {
		return nil, validation("status must be one of PENDING, CONFIRMED, CANCELLED, COMPLETED")
	}

	updated, err := s.store.SetStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound()
		}
		return nil, persistence(err)
	}

	s.metrics.ObserveAdminOverride("status")
	s.log.Info("appointment status set", "id", id, "status", st, "admin_id", p.ID)
	return updated, nil
}

// Reschedule moves an appointment to a new date/slot, optionally setting the
// status in the same write. The slot is checked against the catalog but not
// against other bookings: admins may double-book on purpose and are expected
// to resolve such overlaps themselves.
func (s *AdminService) Reschedule(ctx context.Context, p model.Principal, id, date, timeSlot, status string) (*model.Appointment, error) {
	if err := CheckAdminTransition(p); err != nil {
		return nil, err
	}
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

	var st *model.Status
	if status != "" {
		parsed, ok := model.ParseStatus(status)
		if !ok {
			return nil, validation("status must be one of PENDING, CONFIRMED, CANCELLED, COMPLETED")
		}
		st = &parsed
	}

	updated, err := s.store.Reschedule(ctx, id, day, timeSlot, st)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound()
		}
		return nil, persistence(err)
	}

	s.metrics.ObserveAdminOverride("reschedule")
	s.log.Info("appointment rescheduled", "id", id, "date", day.Format("2006-01-02"), "slot", timeSlot, "admin_id", p.ID)
	return updated, nil
}

// Stats returns the dashboard counters.
func (s *AdminService) Stats(ctx context.Context, p model.Principal) (*store.Stats, error) {
	if err := CheckAdminTransition(p); err != nil {
		return nil, err
	}
	today := slots.NormalizeDate(time.Now())
	out, err := s.store.CountStats(ctx, today)
	if err != nil {
		return nil, persistence(err)
	}
	return out, nil
}
