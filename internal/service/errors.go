package service

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"
)

// Доменные ошибки. На границе HTTP превращаются в пользовательские
// сообщения; ошибки хранилища наружу уходят как есть (без ретраев).
var (
	ErrNotFound           = errors.New("entity not found")
	ErrSlotTaken          = errors.New("trainer already has a reservation at this slot")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrUserBanned         = errors.New("user is banned")
	ErrLoginTaken         = errors.New("login is already taken")
	ErrBadAmount          = errors.New("invalid amount")
	ErrPaymentUnverified  = errors.New("payment is not confirmed by provider")
)

// asNotFound переводит отсутствие записи в доменную ошибку.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Запись аудита идёт отдельной транзакцией после основной мутации;
// её потерю не превращаем в ошибку операции.
func logAuditFailure(action, entity any, err error) {
	slog.Error("audit_record_failed", "action", action, "entity", entity, "err", err)
}
