package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salon-booking-api/internal/middleware"
	"salon-booking-api/internal/model"
)

type createAppointmentRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Note     string `json:"note"`
}

// CreateAppointment handles POST /api/appointments.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.svc.Create(r.Context(), p, req.Date, req.TimeSlot, req.Note)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "appointment booked",
		"appointment": a,
	})
}

// ListAppointments handles GET /api/appointments, the principal's own
// bookings only.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	list, err := h.svc.ListMine(r.Context(), p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if list == nil {
		list = []model.Appointment{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"appointments": list})
}

// CancelAppointment handles PUT /api/appointments/{id}/cancel.
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	a, err := h.svc.Cancel(r.Context(), p, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "appointment cancelled",
		"appointment": a,
	})
}
