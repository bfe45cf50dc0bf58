package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"salon-booking-api/internal/booking"
	"salon-booking-api/internal/store"
)

type Handler struct {
	svc    *booking.Service
	admin  *booking.AdminService
	store  *store.Store
	secret string
	log    *slog.Logger
}

func New(svc *booking.Service, admin *booking.AdminService, st *store.Store, secret string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, admin: admin, store: st, secret: secret, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps the service error taxonomy onto HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch booking.KindOf(err) {
	case booking.KindValidation, booking.KindSlotUnavailable, booking.KindInvalidState:
		writeMessage(w, http.StatusBadRequest, err.Error())
	case booking.KindForbidden:
		writeMessage(w, http.StatusForbidden, err.Error())
	case booking.KindNotFound:
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
	}
}
