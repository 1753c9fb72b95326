package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dvasylenko/fitbook/internal/booking"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/dvasylenko/fitbook/internal/service"
	"github.com/google/uuid"
)

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.dashboard.AdminStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"users":        stats.Users,
		"trainers":     stats.Trainers,
		"services":     stats.Services,
		"reservations": stats.Reservations,
	})
}

type serviceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DurationMin int64  `json:"duration_min"`
	PriceCents  int64  `json:"price_cents"`
	Category    string `json:"category"`
	CenterID    string `json:"center_id"`
}

func (s *Server) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.PriceCents <= 0 || req.DurationMin <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "name, positive price_cents and duration_min are required")
		return
	}

	centerID, err := uuid.Parse(req.CenterID)
	if err != nil {
		// Центр не указан — привязываем к дефолтному.
		center, cerr := s.catalog.EnsureDefaultCenter(r.Context())
		if cerr != nil {
			writeServiceError(w, cerr)
			return
		}
		centerID = center.ID
	}

	svc, err := s.catalog.CreateService(r.Context(), currentUser(r).ID, service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.DurationMin,
		Price:       req.PriceCents,
		Category:    req.Category,
		CenterID:    centerID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toServiceView(svc))
}

func (s *Server) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req serviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.DurationMin > 0 {
		updates["duration"] = req.DurationMin
	}
	if req.PriceCents > 0 {
		updates["price"] = req.PriceCents
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}

	svc, err := s.catalog.UpdateService(r.Context(), currentUser(r).ID, id, updates)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceView(svc))
}

func (s *Server) handleDeactivateService(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := s.catalog.DeactivateService(r.Context(), currentUser(r).ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type trainerRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	GymID          string `json:"gym_id"`
}

func (s *Server) handleCreateTrainer(w http.ResponseWriter, r *http.Request) {
	var req trainerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	gymID, err := uuid.Parse(req.GymID)
	if err != nil {
		center, cerr := s.catalog.EnsureDefaultCenter(r.Context())
		if cerr != nil {
			writeServiceError(w, cerr)
			return
		}
		gymID = center.ID
	}

	trainer, err := s.catalog.CreateTrainer(r.Context(), currentUser(r).ID, service.TrainerInput{
		Name:           req.Name,
		Specialization: req.Specialization,
		GymID:          gymID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTrainerView(trainer))
}

func (s *Server) handleUpdateTrainer(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req trainerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Specialization != "" {
		updates["specialization"] = req.Specialization
	}

	trainer, err := s.catalog.UpdateTrainer(r.Context(), currentUser(r).ID, id, updates)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrainerView(trainer))
}

func (s *Server) handleDeactivateTrainer(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := s.catalog.DeactivateTrainer(r.Context(), currentUser(r).ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// GET /api/admin/reservations?trainer_id=&service_id=&user_id=&date=&q=&status=&page=&page_size=
func (s *Server) handleAdminReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f repository.ReservationFilter
	if id, err := uuid.Parse(q.Get("user_id")); err == nil {
		f.UserID = &id
	}
	if id, err := uuid.Parse(q.Get("trainer_id")); err == nil {
		f.TrainerID = &id
	}
	if id, err := uuid.Parse(q.Get("service_id")); err == nil {
		f.ServiceID = &id
	}
	if raw := q.Get("date"); raw != "" {
		slot, err := booking.ParseSlot(raw, "00:00")
		if err != nil {
			writeServiceError(w, err)
			return
		}
		f.Date = slot.Date
	}
	f.Query = q.Get("q")

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	result, err := s.bookings.ListForAdmin(r.Context(), f, q.Get("status"), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":     toGroupedViews(result.Items, true),
		"page":      result.Page,
		"page_size": result.PageSize,
		"total":     result.Total,
		"has_next":  result.HasNext,
		"has_prev":  result.HasPrev,
	})
}

func (s *Server) handleAdminGetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	res, err := s.bookings.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationView(res, "", true))
}

func (s *Server) handleReservationLog(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	list, err := s.audit.ForEntity(r.Context(), "reservation", id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuditViews(list))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.identity.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]userView, 0, len(list))
	for i := range list {
		out = append(out, toUserView(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBanUser(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := s.identity.BanUser(r.Context(), id, currentUser(r).ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUnbanUser(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := s.identity.UnbanUser(r.Context(), id, currentUser(r).ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleManualTopUp(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req topUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.payments.ManualTopUp(r.Context(), id, req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := s.audit.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuditViews(list))
}
