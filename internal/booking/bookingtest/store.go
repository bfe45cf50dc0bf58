// Package bookingtest provides an in-memory store for service and handler
// tests. It enforces the same one-active-booking-per-slot rule the database's
// partial unique index does, so race behavior can be tested without postgres.
package bookingtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"salon-booking-api/internal/model"
	"salon-booking-api/internal/store"
)

type MemStore struct {
	mu           sync.Mutex
	appointments map[string]*model.Appointment
	Users        map[string]model.Owner
}

func NewMemStore() *MemStore {
	return &MemStore{
		appointments: make(map[string]*model.Appointment),
		Users:        make(map[string]model.Owner),
	}
}

func slotKey(date time.Time, slot string) string {
	return date.Format("2006-01-02") + "|" + slot
}

func (m *MemStore) CreateAppointment(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.appointments {
		if other.Status == model.StatusPending && slotKey(other.Date, other.TimeSlot) == slotKey(a.Date, a.TimeSlot) {
			return store.ErrSlotTaken
		}
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *MemStore) GetAppointment(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MemStore) HasSlotConflict(_ context.Context, date time.Time, timeSlot string, blocking []model.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appointments {
		if slotKey(a.Date, a.TimeSlot) != slotKey(date, timeSlot) {
			continue
		}
		for _, st := range blocking {
			if a.Status == st {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *MemStore) CancelPending(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok || a.Status != model.StatusPending {
		return nil, store.ErrNotPending
	}
	a.Status = model.StatusCancelled
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (m *MemStore) SetStatus(_ context.Context, id string, status model.Status) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (m *MemStore) Reschedule(_ context.Context, id string, date time.Time, timeSlot string, status *model.Status) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	a.Date, a.TimeSlot = date, timeSlot
	if status != nil {
		a.Status = *status
	}
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func sortForListing(list []model.Appointment) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].TimeSlot < list[j].TimeSlot
	})
}

func (m *MemStore) ListByUser(_ context.Context, userID string) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for _, a := range m.appointments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sortForListing(out)
	return out, nil
}

func (m *MemStore) ListAll(_ context.Context, f store.ListFilter) ([]model.AppointmentWithOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var flat []model.Appointment
	for _, a := range m.appointments {
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if !f.Date.IsZero() && !a.Date.Equal(f.Date) {
			continue
		}
		flat = append(flat, *a)
	}
	sortForListing(flat)

	out := make([]model.AppointmentWithOwner, len(flat))
	for i, a := range flat {
		out[i] = model.AppointmentWithOwner{Appointment: a, User: m.Users[a.UserID]}
	}
	return out, nil
}

func (m *MemStore) CountStats(_ context.Context, today time.Time) (*store.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := &store.Stats{TotalUsers: int64(len(m.Users))}
	for _, a := range m.appointments {
		st.TotalAppointments++
		if a.Date.Equal(today) {
			st.TodayAppointments++
		}
	}
	return st, nil
}
