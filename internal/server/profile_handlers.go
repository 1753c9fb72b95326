package server

import (
	"net/http"

	"github.com/dvasylenko/fitbook/internal/service"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserView(currentUser(r)))
}

type profileUpdateRequest struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.identity.UpdateProfile(r.Context(), currentUser(r).ID, service.ProfileUpdate{
		Login:     req.Login,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(user))
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.identity.ChangePassword(r.Context(), currentUser(r).ID, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUserDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard.UserSummary(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var next *reservationView
	if d.Next != nil {
		v := toReservationView(&d.Next.Reservation, string(d.Next.UIStatus), false)
		next = &v
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_reservations":     d.TotalReservations,
		"completed_reservations": d.CompletedReservations,
		"canceled_reservations":  d.CanceledReservations,
		"total_spent_cents":      d.TotalSpent,
		"next":                   next,
		"recent":                 toGroupedViews(d.Recent, false),
		"chart_labels":           d.ChartLabels,
		"chart_values":           d.ChartValues,
		"recommendations":        d.Recommendations,
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.ledger.History(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionViews(list))
}

type topUpRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) handleStartTopUp(w http.ResponseWriter, r *http.Request) {
	var req topUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	redirectURL, sessionID, err := s.payments.StartTopUp(r.Context(), currentUser(r).ID, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"redirect_url": redirectURL,
		"session_id":   sessionID.String(),
	})
}

func (s *Server) handleConfirmTopUp(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := uuidParam(w, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}

	sess, err := s.payments.ConfirmTopUp(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sess.UserID != currentUser(r).ID {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       string(sess.Status),
		"amount_cents": sess.AmountCents,
	})
}
