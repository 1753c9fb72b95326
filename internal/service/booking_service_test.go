package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

func TestBookingService_Create_DebitsExactlyPrice(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 10000, 4000)
	svc := newBookingService(db)

	res, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Status != model.ReservationStatusActive {
		t.Fatalf("expected active, got %q", res.Status)
	}

	if got := userFunds(t, db, f.user.ID); got != 6000 {
		t.Fatalf("expected funds 6000, got %d", got)
	}

	txs := userTransactions(t, db, f.user.ID)
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Type != model.TransactionTypePayment || txs[0].Amount != -4000 {
		t.Fatalf("expected payment of -4000, got %s %d", txs[0].Type, txs[0].Amount)
	}
}

func TestBookingService_Create_NormalizesLegacyDate(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 10000, 4000)
	svc := newBookingService(db)

	res, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "01.06.2030", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Date != "2030-06-01" {
		t.Fatalf("expected normalized date, got %q", res.Date)
	}
}

func TestBookingService_Create_InsufficientFundsRollsBack(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 3000, 4000)
	svc := newBookingService(db)

	_, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Транзакция откатилась целиком: ни брони, ни записи в леджере.
	var count int64
	if err := db.Model(&model.Reservation{}).Count(&count).Error; err != nil {
		t.Fatalf("count reservations: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no reservations, got %d", count)
	}
	if got := userFunds(t, db, f.user.ID); got != 3000 {
		t.Fatalf("expected funds untouched (3000), got %d", got)
	}
	if txs := userTransactions(t, db, f.user.ID); len(txs) != 0 {
		t.Fatalf("expected no transactions, got %d", len(txs))
	}
}

func TestBookingService_Create_SlotTaken(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 10000, 4000)
	svc := newBookingService(db)

	if _, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00"); err != nil {
		t.Fatalf("first create: %v", err)
	}

	other := &model.User{ID: uuid.New(), Login: "other", PasswordHash: "x", Email: "o@example.com", Funds: 10000}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("seed other user: %v", err)
	}

	_, err := svc.Create(context.Background(), other.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	// Деньги второго клиента не тронуты.
	if got := userFunds(t, db, other.ID); got != 10000 {
		t.Fatalf("expected funds untouched, got %d", got)
	}
}

func TestBookingService_CancelSelf_RefundsAndDeletes(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 10000, 4000)
	svc := newBookingService(db)

	res, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	outcome, err := svc.CancelSelf(context.Background(), res.ID, f.user.ID)
	if err != nil {
		t.Fatalf("cancel self: %v", err)
	}
	if outcome != OutcomeDeleted {
		t.Fatalf("expected %q, got %q", OutcomeDeleted, outcome)
	}

	// Баланс вернулся к исходному, в леджере списание и возврат.
	if got := userFunds(t, db, f.user.ID); got != 10000 {
		t.Fatalf("expected funds 10000, got %d", got)
	}
	txs := userTransactions(t, db, f.user.ID)
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	var sum int64
	for _, tx := range txs {
		sum += tx.Amount
	}
	if sum != 0 {
		t.Fatalf("expected ledger sum 0, got %d", sum)
	}

	// Строка удалена жёстко.
	err = db.First(&model.Reservation{}, "id = ?", res.ID).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected row gone, got %v", err)
	}
}

func TestBookingService_CancelSelf_ForeignReservationHidden(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 10000, 4000)
	svc := newBookingService(db)

	res, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := &model.User{ID: uuid.New(), Login: "stranger", PasswordHash: "x", Email: "s@example.com"}
	if err := db.Create(stranger).Error; err != nil {
		t.Fatalf("seed stranger: %v", err)
	}

	if _, err := svc.CancelSelf(context.Background(), res.ID, stranger.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign reservation, got %v", err)
	}
}

func TestBookingService_CancelByAdmin_SoftAndAudited(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 10000, 4000)
	svc := newBookingService(db)

	res, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	admin := &model.User{ID: uuid.New(), Login: "admin", PasswordHash: "x", Email: "a@example.com", IsAdmin: true}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	outcome, err := svc.CancelByAdmin(context.Background(), res.ID, admin.ID)
	if err != nil {
		t.Fatalf("cancel by admin: %v", err)
	}
	if outcome != OutcomeSoftCanceled {
		t.Fatalf("expected %q, got %q", OutcomeSoftCanceled, outcome)
	}

	// Средства не тронуты, строка осталась со статусом canceled.
	if got := userFunds(t, db, f.user.ID); got != 6000 {
		t.Fatalf("expected funds 6000, got %d", got)
	}
	var stored model.Reservation
	if err := db.First(&stored, "id = ?", res.ID).Error; err != nil {
		t.Fatalf("load reservation: %v", err)
	}
	if stored.Status != model.ReservationStatusCanceled {
		t.Fatalf("expected canceled, got %q", stored.Status)
	}

	entries := auditEntries(t, db, "reservation", res.ID)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Action != model.AuditActionCancel || entries[0].UserID != admin.ID {
		t.Fatalf("unexpected audit entry: %s by %s", entries[0].Action, entries[0].UserID)
	}
}

func TestBookingService_Reschedule_ConflictLeavesBothUntouched(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 20000, 4000)
	svc := newBookingService(db)

	first, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "12:00")
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	actor := Actor{ID: f.user.ID}
	if _, err := svc.Reschedule(context.Background(), second.ID, actor, "2030-06-01", "10:00"); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	var a, b model.Reservation
	if err := db.First(&a, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("load first: %v", err)
	}
	if err := db.First(&b, "id = ?", second.ID).Error; err != nil {
		t.Fatalf("load second: %v", err)
	}
	if a.Time != "10:00" || b.Time != "12:00" {
		t.Fatalf("expected slots untouched, got %q and %q", a.Time, b.Time)
	}
}

func TestBookingService_Reschedule_AdminAudited_ClientNot(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 20000, 4000)
	svc := newBookingService(db)

	res, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Клиентский перенос аудита не оставляет.
	if _, err := svc.Reschedule(context.Background(), res.ID, Actor{ID: f.user.ID}, "2030-06-02", "11:00"); err != nil {
		t.Fatalf("client reschedule: %v", err)
	}
	if entries := auditEntries(t, db, "reservation", res.ID); len(entries) != 0 {
		t.Fatalf("expected no audit entries after client reschedule, got %d", len(entries))
	}

	admin := &model.User{ID: uuid.New(), Login: "admin", PasswordHash: "x", Email: "a@example.com", IsAdmin: true}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	updated, err := svc.Reschedule(context.Background(), res.ID, Actor{ID: admin.ID, IsAdmin: true}, "2030-06-03", "12:00")
	if err != nil {
		t.Fatalf("admin reschedule: %v", err)
	}
	if updated.Date != "2030-06-03" || updated.Time != "12:00" {
		t.Fatalf("expected new slot, got %s %s", updated.Date, updated.Time)
	}

	entries := auditEntries(t, db, "reservation", res.ID)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Action != model.AuditActionReschedule {
		t.Fatalf("expected reschedule action, got %q", entries[0].Action)
	}
	if len(entries[0].Details) == 0 {
		t.Fatalf("expected from/to details in audit entry")
	}
}

func TestBookingService_Restore_ConflictRejected(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 20000, 4000)
	svc := newBookingService(db)

	admin := &model.User{ID: uuid.New(), Login: "admin", PasswordHash: "x", Email: "a@example.com", IsAdmin: true}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	res, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CancelByAdmin(context.Background(), res.ID, admin.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Пока бронь была отменена, слот занял другой клиент.
	if _, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00"); err != nil {
		t.Fatalf("rebook slot: %v", err)
	}

	if _, err := svc.Restore(context.Background(), res.ID, admin.ID); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken on restore, got %v", err)
	}
}

func TestBookingService_Restore_ReactivatesAndAudits(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 20000, 4000)
	svc := newBookingService(db)

	admin := &model.User{ID: uuid.New(), Login: "admin", PasswordHash: "x", Email: "a@example.com", IsAdmin: true}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	res, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CancelByAdmin(context.Background(), res.ID, admin.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	fundsBefore := userFunds(t, db, f.user.ID)

	restored, err := svc.Restore(context.Background(), res.ID, admin.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Status != model.ReservationStatusActive {
		t.Fatalf("expected active, got %q", restored.Status)
	}

	// Восстановление не трогает средства: отмена их тоже не трогала.
	if got := userFunds(t, db, f.user.ID); got != fundsBefore {
		t.Fatalf("expected funds unchanged (%d), got %d", fundsBefore, got)
	}

	var actions []model.AuditAction
	for _, e := range auditEntries(t, db, "reservation", res.ID) {
		actions = append(actions, e.Action)
	}
	if len(actions) != 2 {
		t.Fatalf("expected cancel+restore in audit, got %v", actions)
	}
}

func TestBookingService_ListForUser_Groups(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 30000, 4000)
	svc := newBookingService(db)

	admin := &model.User{ID: uuid.New(), Login: "admin", PasswordHash: "x", Email: "a@example.com", IsAdmin: true}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	upcoming, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create upcoming: %v", err)
	}
	canceled, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-07-01", "10:00")
	if err != nil {
		t.Fatalf("create to-cancel: %v", err)
	}
	if _, err := svc.CancelByAdmin(context.Background(), canceled.ID, admin.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	past := &model.Reservation{
		ID:        uuid.New(),
		TrainerID: f.trainer.ID,
		ServiceID: f.service.ID,
		UserID:    f.user.ID,
		Date:      "2020-01-01",
		Time:      "10:00",
		Status:    model.ReservationStatusActive,
	}
	if err := db.Create(past).Error; err != nil {
		t.Fatalf("seed past: %v", err)
	}

	g, err := svc.ListForUser(context.Background(), f.user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(g.Upcoming) != 1 || g.Upcoming[0].ID != upcoming.ID {
		t.Fatalf("expected 1 upcoming, got %d", len(g.Upcoming))
	}
	if len(g.Canceled) != 1 || g.Canceled[0].ID != canceled.ID {
		t.Fatalf("expected 1 canceled, got %d", len(g.Canceled))
	}
	if len(g.Past) != 1 || g.Past[0].ID != past.ID {
		t.Fatalf("expected 1 past, got %d", len(g.Past))
	}
	if len(g.Today) != 0 {
		t.Fatalf("expected no today entries, got %d", len(g.Today))
	}
}

func TestBookingService_EndToEndFundsScenario(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 10000, 4000)
	svc := newBookingService(db)

	res, err := svc.Create(context.Background(), f.user.ID, f.service.ID, f.trainer.ID, "2030-06-01", "10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := userFunds(t, db, f.user.ID); got != 6000 {
		t.Fatalf("after booking: expected 6000, got %d", got)
	}

	if _, err := svc.CancelSelf(context.Background(), res.ID, f.user.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := userFunds(t, db, f.user.ID); got != 10000 {
		t.Fatalf("after refund: expected 10000, got %d", got)
	}
}
