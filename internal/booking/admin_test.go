package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-booking-api/internal/booking"
	"salon-booking-api/internal/model"
	"salon-booking-api/internal/store"
)

func TestAdminGuard(t *testing.T) {
	svc, adminSvc, _ := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	a, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)

	_, err = adminSvc.ListAll(ctx, userOne, store.ListFilter{})
	assert.Equal(t, booking.KindForbidden, booking.KindOf(err))

	_, err = adminSvc.SetStatus(ctx, userOne, a.ID, "CONFIRMED")
	assert.Equal(t, booking.KindForbidden, booking.KindOf(err))

	_, err = adminSvc.Reschedule(ctx, userOne, a.ID, "2025-03-11", "09:30", "")
	assert.Equal(t, booking.KindForbidden, booking.KindOf(err))

	_, err = adminSvc.Stats(ctx, userOne)
	assert.Equal(t, booking.KindForbidden, booking.KindOf(err))
}

func TestAdminSetStatus(t *testing.T) {
	svc, adminSvc, _ := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	a, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)

	updated, err := adminSvc.SetStatus(ctx, admin, a.ID, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)

	// the owner can no longer self-cancel a completed appointment
	_, err = svc.Cancel(ctx, userOne, a.ID)
	assert.Equal(t, booking.KindInvalidState, booking.KindOf(err))
}

func TestAdminSetStatusValidation(t *testing.T) {
	svc, adminSvc, st := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	a, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)

	for _, bad := range []string{"", "pending", "DONE", "ARCHIVED"} {
		_, err := adminSvc.SetStatus(ctx, admin, a.ID, bad)
		require.Error(t, err, "status %q", bad)
		assert.Equal(t, booking.KindValidation, booking.KindOf(err))
	}

	got, err := st.GetAppointment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status, "rejected statuses must leave the record unchanged")
}

func TestAdminSetStatusNotFound(t *testing.T) {
	_, adminSvc, _ := newServices(t, booking.DefaultPolicy())

	_, err := adminSvc.SetStatus(context.Background(), admin, "missing-id", "CONFIRMED")
	assert.Equal(t, booking.KindNotFound, booking.KindOf(err))
}

func TestAdminReschedule(t *testing.T) {
	svc, adminSvc, _ := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	a, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)

	updated, err := adminSvc.Reschedule(ctx, admin, a.ID, "2025-03-12", "15:30", "CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", updated.Date.Format("2006-01-02"))
	assert.Equal(t, "15:30", updated.TimeSlot)
	assert.Equal(t, model.StatusConfirmed, updated.Status)
}

func TestAdminRescheduleKeepsStatus(t *testing.T) {
	svc, adminSvc, _ := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	a, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)

	updated, err := adminSvc.Reschedule(ctx, admin, a.ID, "2025-03-11", "10:00", "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, updated.Status)
}

func TestAdminRescheduleSkipsConflictCheck(t *testing.T) {
	svc, adminSvc, _ := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	_, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)
	b, err := svc.Create(ctx, userTwo, "2025-03-10", "09:30", "")
	require.NoError(t, err)

	// admins may stack bookings on a slot deliberately
	updated, err := adminSvc.Reschedule(ctx, admin, b.ID, "2025-03-10", "09:00", "")
	require.NoError(t, err)
	assert.Equal(t, "09:00", updated.TimeSlot)
}

func TestAdminRescheduleValidation(t *testing.T) {
	svc, adminSvc, _ := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	a, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)

	tests := []struct {
		name             string
		date, slot, stat string
	}{
		{"missing date", "", "09:00", ""},
		{"missing slot", "2025-03-11", "", ""},
		{"unknown slot", "2025-03-11", "12:30", ""},
		{"bad date", "tomorrow", "09:00", ""},
		{"bad status", "2025-03-11", "09:00", "DONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := adminSvc.Reschedule(ctx, admin, a.ID, tt.date, tt.slot, tt.stat)
			require.Error(t, err)
			assert.Equal(t, booking.KindValidation, booking.KindOf(err))
		})
	}
}

func TestAdminListAll(t *testing.T) {
	svc, adminSvc, _ := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	_, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, userTwo, "2025-03-11", "13:30", "")
	require.NoError(t, err)

	list, err := adminSvc.ListAll(ctx, admin, store.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)

	// most recent day first, owner joined in
	assert.Equal(t, "2025-03-11", list[0].Date.Format("2006-01-02"))
	assert.Equal(t, "two@test.com", list[0].User.Email)
	assert.Equal(t, "User One", list[1].User.Name)
}

func TestAdminListFilter(t *testing.T) {
	svc, adminSvc, _ := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	a, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, userTwo, "2025-03-10", "09:30", "")
	require.NoError(t, err)
	_, err = adminSvc.SetStatus(ctx, admin, a.ID, "CANCELLED")
	require.NoError(t, err)

	list, err := adminSvc.ListAll(ctx, admin, store.ListFilter{Status: "CANCELLED"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
}

func TestAdminStats(t *testing.T) {
	svc, adminSvc, _ := newServices(t, booking.DefaultPolicy())
	ctx := context.Background()

	_, err := svc.Create(ctx, userOne, "2025-03-10", "09:00", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, userTwo, "2025-03-11", "09:00", "")
	require.NoError(t, err)

	st, err := adminSvc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.TotalUsers)
	assert.Equal(t, int64(2), st.TotalAppointments)
}
