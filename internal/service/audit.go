package service

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/google/uuid"
)

// AuditRecorder пишет журнал административных действий.
// Запись коммитится отдельно, сразу после задокументированной
// операции; журнал append-only.
type AuditRecorder struct {
	logs repository.AuditRepository
}

func NewAuditRecorder(logs repository.AuditRepository) *AuditRecorder {
	return &AuditRecorder{logs: logs}
}

// Record добавляет одну запись. details опционален.
func (a *AuditRecorder) Record(
	ctx context.Context,
	actorID uuid.UUID,
	action model.AuditAction,
	entity string,
	entityID *uuid.UUID,
	details map[string]any,
) error {
	entry := &model.AuditLog{
		ID:       uuid.New(),
		UserID:   actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}

	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("audit details: %w", err)
		}
		entry.Details = datatypes.JSON(raw)
	}

	if err := a.logs.Append(ctx, entry); err != nil {
		return fmt.Errorf("audit append: %w", err)
	}
	return nil
}

// Recent — последние записи по всем сущностям, timestamp DESC.
func (a *AuditRecorder) Recent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	return a.logs.ListRecent(ctx, limit)
}

// ForEntity — история одной сущности, timestamp DESC.
func (a *AuditRecorder) ForEntity(ctx context.Context, entity string, entityID uuid.UUID) ([]model.AuditLog, error) {
	return a.logs.ListForEntity(ctx, entity, entityID)
}
