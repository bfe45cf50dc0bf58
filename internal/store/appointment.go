package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"salon-booking-api/internal/model"
)

const appointmentCols = `id, user_id, date, time_slot, note, status, created_at, updated_at`

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := row.Scan(&a.ID, &a.UserID, &a.Date, &a.TimeSlot, &a.Note, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAppointment inserts a new booking. The partial unique index on
// (date, time_slot) for PENDING rows is the real exclusivity guarantee: when
// two requests race for one slot the loser fails here with ErrSlotTaken.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO appointments (id, user_id, date, time_slot, note, status)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		a.ID, a.UserID, a.Date, a.TimeSlot, a.Note, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}

// HasSlotConflict is the advisory read before a create; the insert constraint
// stays authoritative.
func (s *Store) HasSlotConflict(ctx context.Context, date time.Time, timeSlot string, blocking []model.Status) (bool, error) {
	statuses := make([]string, len(blocking))
	for i, st := range blocking {
		statuses[i] = string(st)
	}

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE date = $1 AND time_slot = $2 AND status = ANY($3)
		)`, date, timeSlot, statuses,
	).Scan(&exists)
	return exists, err
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a, err := scanAppointment(s.db.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// CancelPending flips PENDING -> CANCELLED in one conditional write so a
// concurrent status change cannot be overwritten.
func (s *Store) CancelPending(ctx context.Context, id string) (*model.Appointment, error) {
	a, err := scanAppointment(s.db.QueryRow(ctx,
		`UPDATE appointments SET status = 'CANCELLED', updated_at = NOW()
		 WHERE id = $1 AND status = 'PENDING'
		 RETURNING `+appointmentCols, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotPending
	}
	return a, err
}

func (s *Store) SetStatus(ctx context.Context, id string, status model.Status) (*model.Appointment, error) {
	a, err := scanAppointment(s.db.QueryRow(ctx,
		`UPDATE appointments SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+appointmentCols, id, status,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// Reschedule moves date/slot and, when status is non-nil, the status too.
func (s *Store) Reschedule(ctx context.Context, id string, date time.Time, timeSlot string, status *model.Status) (*model.Appointment, error) {
	q := `UPDATE appointments SET date = $2, time_slot = $3, updated_at = NOW()`
	args := []any{id, date, timeSlot}
	if status != nil {
		q += `, status = $4`
		args = append(args, *status)
	}
	q += ` WHERE id = $1 RETURNING ` + appointmentCols

	a, err := scanAppointment(s.db.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+appointmentCols+`
		 FROM appointments
		 WHERE user_id = $1
		 ORDER BY date DESC, time_slot ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Date, &a.TimeSlot, &a.Note, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAll joins in owner name/email for the admin view.
func (s *Store) ListAll(ctx context.Context, f ListFilter) ([]model.AppointmentWithOwner, error) {
	q := `SELECT a.id, a.user_id, a.date, a.time_slot, a.note, a.status, a.created_at, a.updated_at,
	             u.id, u.name, u.email
	      FROM appointments a
	      JOIN users u ON u.id = a.user_id`

	var args []any
	var where []string
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if !f.Date.IsZero() {
		args = append(args, f.Date)
		where = append(where, fmt.Sprintf("a.date = $%d", len(args)))
	}
	for i, w := range where {
		if i == 0 {
			q += " WHERE " + w
		} else {
			q += " AND " + w
		}
	}
	q += ` ORDER BY a.date DESC, a.time_slot ASC`

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AppointmentWithOwner
	for rows.Next() {
		var a model.AppointmentWithOwner
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Date, &a.TimeSlot, &a.Note, &a.Status, &a.CreatedAt, &a.UpdatedAt,
			&a.User.ID, &a.User.Name, &a.User.Email,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountStats gathers the admin dashboard counters. today must be a normalized
// (midnight UTC) date.
func (s *Store) CountStats(ctx context.Context, today time.Time) (*Stats, error) {
	st := &Stats{}
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.TotalUsers); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&st.TotalAppointments); err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	if err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE date = $1`, today,
	).Scan(&st.TodayAppointments); err != nil {
		return nil, fmt.Errorf("count today: %w", err)
	}
	return st, nil
}
