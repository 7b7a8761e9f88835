package models

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// AuditLog is an immutable change record. Rows are append-only: nothing in
// this codebase updates or deletes them after Create.
type AuditLog struct {
	ID         int         `gorm:"primaryKey" json:"id"`
	TenantId   string      `gorm:"type:char(36);index;not null" json:"tenant_id"`
	UserId     *string     `gorm:"type:char(36);index" json:"user_id"`
	Action     AuditAction `gorm:"size:10;not null" json:"action"`
	EntityType string      `gorm:"size:100;not null;index:ix_audit_entity" json:"entity_type"`
	EntityId   string      `gorm:"type:char(36);not null;index:ix_audit_entity" json:"entity_id"`
	Changes    string      `gorm:"type:text" json:"changes"`
	Metadata   string      `gorm:"type:text" json:"metadata"`
	CreatedAt  time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
}

// AuditChanges is the persisted shape of the changes column.
// CREATE carries only After, DELETE only Before, UPDATE both.
type AuditChanges struct {
	Before any `json:"before,omitempty"`
	After  any `json:"after,omitempty"`
}

// AuditLogger appends audit records for one tenant/actor pair. The append is
// synchronous: the caller gets back the stored record or an error, never a
// silent drop.
type AuditLogger struct {
	db       *gorm.DB
	tenantId string
	userId   *string
}

func NewAuditLogger(db *gorm.DB, tenantId string, userId string) *AuditLogger {
	logger := &AuditLogger{db: db, tenantId: tenantId}
	if userId != "" {
		logger.userId = &userId
	}
	return logger
}

// newAuditRecord builds the record without persisting it. Snapshots are
// serialized here, so mutating the source entity afterwards cannot alter
// what gets stored.
func (a *AuditLogger) newAuditRecord(action AuditAction, entityType, entityId string, changes AuditChanges, metadata any) (*AuditLog, error) {
	if a.tenantId == "" {
		return nil, errors.New("tenant id is required")
	}

	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}

	record := &AuditLog{
		TenantId:   a.tenantId,
		UserId:     a.userId,
		Action:     action,
		EntityType: entityType,
		EntityId:   entityId,
		Changes:    string(changesJSON),
	}

	if metadata != nil {
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return nil, err
		}
		record.Metadata = string(metadataJSON)
	}

	return record, nil
}

func (a *AuditLogger) Log(ctx context.Context, action AuditAction, entityType, entityId string, changes AuditChanges, metadata any) (*AuditLog, error) {
	record, err := a.newAuditRecord(action, entityType, entityId, changes, metadata)
	if err != nil {
		return nil, err
	}
	if err := a.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (a *AuditLogger) LogCreate(ctx context.Context, entityType, entityId string, data any) (*AuditLog, error) {
	return a.Log(ctx, AuditActionCreate, entityType, entityId, AuditChanges{After: data}, nil)
}

func (a *AuditLogger) LogUpdate(ctx context.Context, entityType, entityId string, before, after any) (*AuditLog, error) {
	return a.Log(ctx, AuditActionUpdate, entityType, entityId, AuditChanges{Before: before, After: after}, nil)
}

func (a *AuditLogger) LogDelete(ctx context.Context, entityType, entityId string, data any) (*AuditLog, error) {
	return a.Log(ctx, AuditActionDelete, entityType, entityId, AuditChanges{Before: data}, nil)
}
