package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mmsteelworks/fabrica_backend/config"
	"github.com/mmsteelworks/fabrica_backend/utils"
)

// ProductionLogEntry is an immutable, per-order journal row: either a
// free-text note or a component serial-number record. Appends are
// independent of stage transitions and need no cross-entity locking.
type ProductionLogEntry struct {
	ID            string       `gorm:"size:36;primary_key" json:"id"` // uuid
	OrderId       int          `gorm:"index;not null" json:"order_id"`
	Kind          LogEntryKind `gorm:"type:enum('Note','Serial');not null" json:"kind"`
	Note          string       `gorm:"type:text" json:"note"`
	ComponentName string       `gorm:"size:255" json:"component_name"`
	SerialNumber  string       `gorm:"size:255" json:"serial_number"`
	ActorId       int          `gorm:"not null" json:"actor_id"`
	ActorName     string       `gorm:"size:100" json:"actor_name"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func AppendLogNote(ctx context.Context, orderId int, text string) ([]ProductionLogEntry, error) {
	if text == "" {
		return nil, errors.New("note text is required")
	}
	return appendLogEntry(ctx, &ProductionLogEntry{
		OrderId: orderId,
		Kind:    LogEntryKindNote,
		Note:    text,
	})
}

func AppendLogSerial(ctx context.Context, orderId int, componentName string, serialNumber string) ([]ProductionLogEntry, error) {
	if componentName == "" || serialNumber == "" {
		return nil, errors.New("component name and serial number are required")
	}
	return appendLogEntry(ctx, &ProductionLogEntry{
		OrderId:       orderId,
		Kind:          LogEntryKindSerial,
		ComponentName: componentName,
		SerialNumber:  serialNumber,
	})
}

func appendLogEntry(ctx context.Context, entry *ProductionLogEntry) ([]ProductionLogEntry, error) {
	actorId, ok := utils.GetActorIdFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	actorName, _ := utils.GetActorNameFromContext(ctx)

	if err := utils.ValidateResourceId[ProductionOrder](ctx, entry.OrderId); err != nil {
		return nil, err
	}

	entry.ID = uuid.NewString()
	entry.ActorId = actorId
	entry.ActorName = actorName

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return GetProductionLog(ctx, entry.OrderId)
}

// GetProductionLog returns the full ordered log for an order.
func GetProductionLog(ctx context.Context, orderId int) ([]ProductionLogEntry, error) {
	var entries []ProductionLogEntry
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("order_id = ?", orderId).
		Order("created_at, id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
