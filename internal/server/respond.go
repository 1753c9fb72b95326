package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dvasylenko/fitbook/internal/booking"
	"github.com/dvasylenko/fitbook/internal/service"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write_response_failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError переводит доменные ошибки в HTTP-статусы.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrSlotTaken):
		writeError(w, http.StatusConflict, "this slot is already booked")
	case errors.Is(err, service.ErrLoginTaken):
		writeError(w, http.StatusConflict, "login is already taken")
	case errors.Is(err, service.ErrInsufficientFunds):
		writeError(w, http.StatusUnprocessableEntity, "insufficient funds")
	case errors.Is(err, service.ErrBadAmount),
		errors.Is(err, booking.ErrBadDate),
		errors.Is(err, booking.ErrBadTime):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrUserBanned):
		writeError(w, http.StatusForbidden, "account is banned")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrPaymentUnverified):
		writeError(w, http.StatusConflict, "payment is not confirmed")
	default:
		slog.Error("internal_error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

// uuidParam парсит path-параметр; невалидный id неотличим от
// несуществующего.
func uuidParam(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}
