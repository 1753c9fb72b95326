package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/notify"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/google/uuid"
)

// IdentityService — регистрация, вход, профиль и веб-сессии.
type IdentityService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository

	audit      *AuditRecorder
	dispatcher *notify.Dispatcher

	sessionTTL time.Duration
	loginURL   string

	now func() time.Time
}

func NewIdentityService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	audit *AuditRecorder,
	dispatcher *notify.Dispatcher,
	sessionTTL time.Duration,
	loginURL string,
) *IdentityService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &IdentityService{
		users:      users,
		sessions:   sessions,
		audit:      audit,
		dispatcher: dispatcher,
		sessionTTL: sessionTTL,
		loginURL:   loginURL,
		now:        time.Now,
	}
}

type RegisterInput struct {
	Login      string
	Password   string
	Email      string
	Phone      string
	BirthDate  string
	TelegramID int64
}

// Register создаёт пользователя: bcrypt-хэш пароля, запись в
// журнал регистраций, приветственное письмо клиенту и алерт
// администратору (оба — best-effort через очередь).
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.users.FindByLogin(ctx, login); err == nil {
		return nil, ErrLoginTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: string(hash),
		BirthDate:    in.BirthDate,
		Phone:        in.Phone,
		Email:        in.Email,
		TelegramID:   in.TelegramID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLoginTaken
		}
		return nil, err
	}

	entry := &model.RegistrationLog{
		ID:    uuid.New(),
		Login: user.Login,
		Email: user.Email,
		Phone: user.Phone,
	}
	if err := s.users.LogRegistration(ctx, entry); err != nil {
		return nil, err
	}

	s.publish(notify.Message{
		Kind:           notify.KindWelcome,
		RecipientEmail: user.Email,
		RecipientName:  user.Login,
		Payload:        map[string]string{"login_url": s.loginURL},
	})
	s.publish(notify.Message{
		Kind: notify.KindAdminNewUser,
		Payload: map[string]string{
			"login": user.Login,
			"email": user.Email,
			"phone": user.Phone,
		},
	})

	return user, nil
}

// Authenticate проверяет логин и пароль. Забаненный пользователь
// не проходит даже с правильным паролем.
func (s *IdentityService) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	return user, nil
}

// StartSession выдаёт токен веб-сессии с TTL.
func (s *IdentityService) StartSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.NewString() + uuid.NewString()
	sess := &model.WebSession{
		Token:     token,
		UserID:    userID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

// SessionUser резолвит токен в пользователя. Просроченная сессия
// удаляется; сессия забаненного пользователя недействительна.
func (s *IdentityService) SessionUser(ctx context.Context, token string) (*model.User, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if s.now().After(sess.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}
	return user, nil
}

// EndSession завершает сессию (logout).
func (s *IdentityService) EndSession(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// PurgeExpiredSessions — периодическая чистка.
func (s *IdentityService) PurgeExpiredSessions(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx, s.now())
}

// ChangePassword меняет пароль после проверки старого.
func (s *IdentityService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return asNotFound(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	if newPassword == "" {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.Updates(ctx, userID, map[string]any{"password_hash": string(hash)})
}

type ProfileUpdate struct {
	Login     string
	Email     string
	Phone     string
	BirthDate string
}

// UpdateProfile обновляет только непустые поля.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (*model.User, error) {
	updates := map[string]any{}
	if v := strings.TrimSpace(in.Login); v != "" {
		updates["login"] = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		updates["email"] = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		updates["phone"] = v
	}
	if v := strings.TrimSpace(in.BirthDate); v != "" {
		updates["birth_date"] = v
	}

	if err := s.users.Updates(ctx, userID, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLoginTaken
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return user, nil
}

// GetUser возвращает пользователя по id.
func (s *IdentityService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return user, nil
}

// ListUsers — все пользователи для админки.
func (s *IdentityService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// BanUser блокирует пользователя; действие аудируется.
func (s *IdentityService) BanUser(ctx context.Context, targetID, actorID uuid.UUID) error {
	return s.setBanned(ctx, targetID, actorID, true, model.AuditActionBan)
}

// UnbanUser снимает блокировку; действие аудируется.
func (s *IdentityService) UnbanUser(ctx context.Context, targetID, actorID uuid.UUID) error {
	return s.setBanned(ctx, targetID, actorID, false, model.AuditActionUnban)
}

func (s *IdentityService) setBanned(ctx context.Context, targetID, actorID uuid.UUID, banned bool, action model.AuditAction) error {
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return asNotFound(err)
	}
	if err := s.users.SetBanned(ctx, targetID, banned); err != nil {
		return err
	}

	if s.audit != nil {
		id := targetID
		if err := s.audit.Record(ctx, actorID, action, "user", &id, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *IdentityService) publish(msg notify.Message) {
	if s.dispatcher != nil {
		s.dispatcher.Publish(msg)
	}
}
