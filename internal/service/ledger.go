package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/google/uuid"
)

// Ledger — единственная точка изменения баланса. Каждое движение
// средств = ровно одна запись в transactions плюс изменение
// users.funds, и то и другое в транзакции вызывающей операции.
// Записи леджера не правятся: ошибка исправляется встречной записью.
type Ledger struct {
	users        repository.UserRepository
	transactions repository.TransactionRepository
}

func NewLedger(users repository.UserRepository, transactions repository.TransactionRepository) *Ledger {
	return &Ledger{users: users, transactions: transactions}
}

// Debit списывает amount (положительное число центов) с баланса.
// Списание условное: UPDATE проходит только при funds >= amount,
// иначе ErrInsufficientFunds — гонка двух одновременных списаний
// не уводит баланс в минус.
func (l *Ledger) Debit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int64, typ model.TransactionType) error {
	if amount <= 0 {
		return fmt.Errorf("ledger debit: %w: %d", ErrBadAmount, amount)
	}

	ok, err := l.users.WithTx(tx).TryDebitFunds(ctx, userID, amount)
	if err != nil {
		return fmt.Errorf("ledger debit: %w", err)
	}
	if !ok {
		return ErrInsufficientFunds
	}

	entry := &model.Transaction{
		ID:     uuid.New(),
		UserID: userID,
		Amount: -amount,
		Type:   typ,
	}
	if err := l.transactions.WithTx(tx).Append(ctx, entry); err != nil {
		return fmt.Errorf("ledger debit: append: %w", err)
	}
	return nil
}

// Credit зачисляет amount (положительное число центов) на баланс.
func (l *Ledger) Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int64, typ model.TransactionType) error {
	if amount <= 0 {
		return fmt.Errorf("ledger credit: %w: %d", ErrBadAmount, amount)
	}

	if err := l.users.WithTx(tx).CreditFunds(ctx, userID, amount); err != nil {
		return fmt.Errorf("ledger credit: %w", err)
	}

	entry := &model.Transaction{
		ID:     uuid.New(),
		UserID: userID,
		Amount: amount,
		Type:   typ,
	}
	if err := l.transactions.WithTx(tx).Append(ctx, entry); err != nil {
		return fmt.Errorf("ledger credit: append: %w", err)
	}
	return nil
}

// History возвращает историю движений пользователя, новые сверху.
func (l *Ledger) History(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	return l.transactions.ListByUser(ctx, userID)
}
