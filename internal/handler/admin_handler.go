package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salon-booking-api/internal/middleware"
	"salon-booking-api/internal/model"
	"salon-booking-api/internal/slots"
	"salon-booking-api/internal/store"
)

// AdminListAppointments handles GET /api/admin/appointments with optional
// ?status= and ?date= filters.
func (h *Handler) AdminListAppointments(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var f store.ListFilter
	if s := r.URL.Query().Get("status"); s != "" {
		st, ok := model.ParseStatus(s)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		f.Status = string(st)
	}
	if d := r.URL.Query().Get("date"); d != "" {
		day, err := slots.ParseDate(d)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "date filter must be formatted as YYYY-MM-DD")
			return
		}
		f.Date = day
	}

	list, err := h.admin.ListAll(r.Context(), p, f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if list == nil {
		list = []model.AppointmentWithOwner{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"appointments": list})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// AdminSetStatus handles PUT /api/admin/appointments/{id}/status.
func (h *Handler) AdminSetStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.admin.SetStatus(r.Context(), p, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "appointment status updated",
		"appointment": a,
	})
}

type rescheduleRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Status   string `json:"status"`
}

// AdminReschedule handles PUT /api/admin/appointments/{id}.
func (h *Handler) AdminReschedule(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.admin.Reschedule(r.Context(), p, chi.URLParam(r, "id"), req.Date, req.TimeSlot, req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "appointment updated",
		"appointment": a,
	})
}

// AdminStats handles GET /api/admin/stats.
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	st, err := h.admin.Stats(r.Context(), p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
