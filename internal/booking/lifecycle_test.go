package booking

import (
	"testing"

	"salon-booking-api/internal/model"
)

func TestCheckOwnerCancel(t *testing.T) {
	owner := model.Principal{ID: "u1", Role: model.RoleUser}
	stranger := model.Principal{ID: "u2", Role: model.RoleUser}

	tests := []struct {
		name   string
		p      model.Principal
		status model.Status
		want   Kind
	}{
		{"owner pending", owner, model.StatusPending, KindUnknown},
		{"owner confirmed", owner, model.StatusConfirmed, KindInvalidState},
		{"owner cancelled", owner, model.StatusCancelled, KindInvalidState},
		{"owner completed", owner, model.StatusCompleted, KindInvalidState},
		{"stranger pending", stranger, model.StatusPending, KindForbidden},
		{"stranger completed", stranger, model.StatusCompleted, KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Appointment{ID: "a1", UserID: "u1", Status: tt.status}
			err := CheckOwnerCancel(tt.p, a)
			if tt.want == KindUnknown {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if KindOf(err) != tt.want {
				t.Fatalf("got kind %v, want %v (err=%v)", KindOf(err), tt.want, err)
			}
		})
	}
}

func TestCheckAdminTransition(t *testing.T) {
	if err := CheckAdminTransition(model.Principal{ID: "a", Role: model.RoleAdmin}); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	err := CheckAdminTransition(model.Principal{ID: "u", Role: model.RoleUser})
	if KindOf(err) != KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
