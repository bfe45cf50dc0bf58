package booking

import "salon-booking-api/internal/model"

// Lifecycle rules:
//
//	owner  PENDING -> CANCELLED, nothing else
//	admin  any -> any
//
// A violated precondition is an error, never a silent no-op.

// CheckOwnerCancel gates the one self-service transition an owner has.
func CheckOwnerCancel(p model.Principal, a *model.Appointment) error {
	if a.UserID != p.ID {
		return forbidden("you are not allowed to modify this appointment")
	}
	if a.Status != model.StatusPending {
		return invalidState("this appointment can no longer be cancelled")
	}
	return nil
}

// CheckAdminTransition gates admin-initiated status changes. Admins may move
// an appointment between any two statuses; the target must still be one of
// the enumerated values, which callers validate via model.ParseStatus.
func CheckAdminTransition(p model.Principal) error {
	if !p.IsAdmin() {
		return forbidden("admin role required")
	}
	return nil
}
