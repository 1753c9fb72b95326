package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Действия, попадающие в журнал аудита.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionDeactivate AuditAction = "deactivate"
	AuditActionCancel     AuditAction = "cancel"
	AuditActionRestore    AuditAction = "restore"
	AuditActionReschedule AuditAction = "reschedule"
	AuditActionBan        AuditAction = "ban"
	AuditActionUnban      AuditAction = "unban"
)

// audit_logs — append-only журнал административных действий.
// Записи не удаляются и не переписываются; выдача — по timestamp DESC.
type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	// Кто сделал.
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	Action AuditAction `gorm:"type:varchar(32);not null"`

	// Что затронуто: "service", "trainer", "reservation", "user".
	Entity   string     `gorm:"type:varchar(32);not null;index:idx_audit_entity"`
	EntityID *uuid.UUID `gorm:"type:uuid;index:idx_audit_entity"`

	// Произвольный контекст действия (старый слот при переносе и т.п.).
	Details datatypes.JSON `gorm:"type:jsonb"`

	Timestamp time.Time `gorm:"not null;default:now();index"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
