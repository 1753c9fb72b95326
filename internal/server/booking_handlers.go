package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dvasylenko/fitbook/internal/service"
)

type bookRequest struct {
	TrainerID string `json:"trainer_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req bookRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trainerID, ok := uuidParam(w, req.TrainerID)
	if !ok {
		return
	}

	res, err := s.bookings.Create(r.Context(), currentUser(r).ID, serviceID, trainerID, req.Date, req.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationView(res, "", false))
}

func (s *Server) handleMyReservations(w http.ResponseWriter, r *http.Request) {
	grouped, err := s.bookings.ListForUser(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"today":    toGroupedViews(grouped.Today, false),
		"upcoming": toGroupedViews(grouped.Upcoming, false),
		"past":     toGroupedViews(grouped.Past, false),
		"canceled": toGroupedViews(grouped.Canceled, false),
	})
}

type rescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (s *Server) handleRescheduleSelf(w http.ResponseWriter, r *http.Request) {
	s.reschedule(w, r, service.Actor{ID: currentUser(r).ID})
}

func (s *Server) handleRescheduleAdmin(w http.ResponseWriter, r *http.Request) {
	s.reschedule(w, r, service.Actor{ID: currentUser(r).ID, IsAdmin: true})
}

func (s *Server) reschedule(w http.ResponseWriter, r *http.Request, actor service.Actor) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req rescheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := s.bookings.Reschedule(r.Context(), id, actor, req.Date, req.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationView(res, "", actor.IsAdmin))
}

func (s *Server) handleCancelSelf(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	outcome, err := s.bookings.CancelSelf(r.Context(), id, currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": string(outcome)})
}

func (s *Server) handleCancelAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	outcome, err := s.bookings.CancelByAdmin(r.Context(), id, currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": string(outcome)})
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	res, err := s.bookings.Restore(r.Context(), id, currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationView(res, "", true))
}
