package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrSlotTaken surfaces the partial unique index on active appointments.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrNotPending means a conditional status write matched no row because
	// the appointment is no longer PENDING.
	ErrNotPending = errors.New("appointment not pending")
)

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it in
// tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type Store struct {
	db DB
}

func New(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// ListFilter narrows the admin listing. Zero values mean no filtering.
type ListFilter struct {
	Status string
	Date   time.Time
}

// Stats backs the admin dashboard counters.
type Stats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalAppointments int64 `json:"totalAppointments"`
	TodayAppointments int64 `json:"todayAppointments"`
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
