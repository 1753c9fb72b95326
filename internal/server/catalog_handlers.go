package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dvasylenko/fitbook/internal/repository"
)

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	opts := repository.ServiceListOptions{
		Category: r.URL.Query().Get("category"),
		SortBy:   r.URL.Query().Get("sort"),
	}

	list, err := s.catalog.ListServices(r.Context(), opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceViews(list))
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	svc, err := s.catalog.GetService(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceView(svc))
}

func (s *Server) handleServiceTrainers(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	trainers, err := s.catalog.ServiceTrainers(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrainerViews(trainers))
}

func (s *Server) handleListTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := s.catalog.ListTrainers(r.Context(), false)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrainerViews(trainers))
}

func (s *Server) handleTrainerProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	profile, err := s.catalog.GetTrainerProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"trainer":  toTrainerView(&profile.Trainer),
		"services": toServiceViews(profile.Services),
		"reviews":  toReviewViews(profile.Reviews),
		"rating":   profile.Rating,
	})
}

type reviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func (s *Server) handleAddReview(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rv, err := s.catalog.AddReview(r.Context(), currentUser(r).ID, id, req.Rating, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reviewView{
		ID:        rv.ID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Text:      rv.Review,
		CreatedAt: rv.CreatedAt,
	})
}
