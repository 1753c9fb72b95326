package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/repository"
)

func newLedgerForTest(db *gorm.DB) *Ledger {
	return NewLedger(
		repository.NewGormUserRepository(db),
		repository.NewGormTransactionRepository(db),
	)
}

func TestLedger_DebitInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 500, 4000)
	ledger := newLedgerForTest(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Debit(context.Background(), tx, f.user.ID, 1000, model.TransactionTypePayment)
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := userFunds(t, db, f.user.ID); got != 500 {
		t.Fatalf("expected funds untouched, got %d", got)
	}
	if txs := userTransactions(t, db, f.user.ID); len(txs) != 0 {
		t.Fatalf("expected empty ledger, got %d entries", len(txs))
	}
}

func TestLedger_RejectsNonPositiveAmounts(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 500, 4000)
	ledger := newLedgerForTest(db)

	for _, amount := range []int64{0, -100} {
		err := db.Transaction(func(tx *gorm.DB) error {
			return ledger.Debit(context.Background(), tx, f.user.ID, amount, model.TransactionTypePayment)
		})
		if !errors.Is(err, ErrBadAmount) {
			t.Fatalf("debit %d: expected ErrBadAmount, got %v", amount, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			return ledger.Credit(context.Background(), tx, f.user.ID, amount, model.TransactionTypeTopUp)
		})
		if !errors.Is(err, ErrBadAmount) {
			t.Fatalf("credit %d: expected ErrBadAmount, got %v", amount, err)
		}
	}
}

func TestLedger_EveryMovementHasEntry(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 1000, 4000)
	ledger := newLedgerForTest(db)

	steps := []struct {
		debit  bool
		amount int64
	}{
		{false, 5000},
		{true, 2000},
		{false, 300},
		{true, 100},
	}

	want := int64(1000)
	for _, s := range steps {
		err := db.Transaction(func(tx *gorm.DB) error {
			if s.debit {
				return ledger.Debit(context.Background(), tx, f.user.ID, s.amount, model.TransactionTypePayment)
			}
			return ledger.Credit(context.Background(), tx, f.user.ID, s.amount, model.TransactionTypeTopUp)
		})
		if err != nil {
			t.Fatalf("step %+v: %v", s, err)
		}
		if s.debit {
			want -= s.amount
		} else {
			want += s.amount
		}
	}

	if got := userFunds(t, db, f.user.ID); got != want {
		t.Fatalf("expected funds %d, got %d", want, got)
	}

	// Баланс восстановим из записей: стартовые средства + сумма леджера.
	txs := userTransactions(t, db, f.user.ID)
	if len(txs) != len(steps) {
		t.Fatalf("expected %d entries, got %d", len(steps), len(txs))
	}
	var sum int64
	for _, tx := range txs {
		sum += tx.Amount
	}
	if 1000+sum != want {
		t.Fatalf("ledger does not reconcile: 1000%+d != %d", sum, want)
	}
}
