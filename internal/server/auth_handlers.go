package server

import (
	"net/http"

	"github.com/dvasylenko/fitbook/internal/service"
)

type registerRequest struct {
	Login      string `json:"login"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date"`
	TelegramID int64  `json:"telegram_id"`
}

func toRegisterInput(req registerRequest) service.RegisterInput {
	return service.RegisterInput{
		Login:      req.Login,
		Password:   req.Password,
		Email:      req.Email,
		Phone:      req.Phone,
		BirthDate:  req.BirthDate,
		TelegramID: req.TelegramID,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.identity.Register(r.Context(), toRegisterInput(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := s.identity.StartSession(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.setSessionCookie(w, token, s.sessionTTL)

	writeJSON(w, http.StatusCreated, toUserView(user))
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.identity.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := s.identity.StartSession(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.setSessionCookie(w, token, s.sessionTTL)

	writeJSON(w, http.StatusOK, toUserView(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		_ = s.identity.EndSession(r.Context(), cookie.Value)
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusNoContent, nil)
}
