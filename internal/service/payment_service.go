package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/google/uuid"
)

// CheckoutProvider — внешний платёжный провайдер c hosted-чекаутом.
// LookupSession обязан отдавать подтверждённую провайдером сумму:
// зачисление сверяется только с ней, никогда с параметрами
// callback-запроса.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, amountCents int64, successURL, cancelURL string) (providerRef, redirectURL string, err error)
	LookupSession(ctx context.Context, providerRef string) (amountCents int64, paid bool, err error)
}

// PaymentService — пополнение баланса: hosted-чекаут и ручное
// пополнение. Кредит всегда идёт через леджер.
type PaymentService struct {
	db       *gorm.DB
	payments repository.PaymentRepository
	ledger   *Ledger
	provider CheckoutProvider

	baseURL string
}

func NewPaymentService(
	db *gorm.DB,
	payments repository.PaymentRepository,
	ledger *Ledger,
	provider CheckoutProvider,
	baseURL string,
) *PaymentService {
	return &PaymentService{
		db:       db,
		payments: payments,
		ledger:   ledger,
		provider: provider,
		baseURL:  baseURL,
	}
}

// ParseAmount переводит сумму в основных единицах ("12.50") в центы.
// Отрицательные, нулевые и дробнее цента значения отклоняются.
func ParseAmount(raw string) (int64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, raw)
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() || !cents.IsPositive() {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, raw)
	}
	return cents.IntPart(), nil
}

// StartTopUp фиксирует сумму на нашей стороне и создаёт чекаут-сессию
// у провайдера. Возвращает URL для редиректа.
func (s *PaymentService) StartTopUp(ctx context.Context, userID uuid.UUID, rawAmount string) (redirectURL string, sessionID uuid.UUID, err error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return "", uuid.Nil, err
	}

	sessionID = uuid.New()
	successURL := fmt.Sprintf("%s/profile/topup/confirm?session_id=%s", s.baseURL, sessionID)
	cancelURL := fmt.Sprintf("%s/profile/topup", s.baseURL)

	providerRef, redirectURL, err := s.provider.CreateSession(ctx, amount, successURL, cancelURL)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("create checkout session: %w", err)
	}

	sess := &model.PaymentSession{
		ID:          sessionID,
		UserID:      userID,
		ProviderRef: providerRef,
		AmountCents: amount,
		Status:      model.PaymentSessionStatusPending,
	}
	if err := s.payments.Create(ctx, sess); err != nil {
		return "", uuid.Nil, err
	}

	return redirectURL, sessionID, nil
}

// ConfirmTopUp зачисляет средства после возврата с чекаута.
// Сумма и факт оплаты сверяются с записью провайдера; сумма из
// клиентского запроса не участвует. Повторное подтверждение
// идемпотентно: уже зачисленная сессия второй раз не кредитуется.
func (s *PaymentService) ConfirmTopUp(ctx context.Context, sessionID uuid.UUID) (*model.PaymentSession, error) {
	sess, err := s.payments.GetByID(ctx, sessionID)
	if err != nil {
		return nil, asNotFound(err)
	}

	if sess.Status == model.PaymentSessionStatusCredited {
		return sess, nil
	}

	amount, paid, err := s.provider.LookupSession(ctx, sess.ProviderRef)
	if err != nil {
		return nil, fmt.Errorf("lookup checkout session: %w", err)
	}
	if !paid || amount != sess.AmountCents {
		return nil, ErrPaymentUnverified
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		credited, err := s.payments.WithTx(tx).MarkCredited(ctx, sessionID)
		if err != nil {
			return err
		}
		if !credited {
			// Конкурирующее подтверждение уже зачислило.
			return nil
		}
		return s.ledger.Credit(ctx, tx, sess.UserID, sess.AmountCents, model.TransactionTypeTopUp)
	})
	if err != nil {
		return nil, err
	}

	sess.Status = model.PaymentSessionStatusCredited
	return sess, nil
}

// ManualTopUp — пополнение без провайдера (касса/админ).
func (s *PaymentService) ManualTopUp(ctx context.Context, userID uuid.UUID, rawAmount string) error {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.ledger.Credit(ctx, tx, userID, amount, model.TransactionTypeTopUp)
	})
}
