package models

import (
	"context"
	"time"

	"github.com/mmsteelworks/fabrica_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialLedgerEntry is an immutable record of a monetary movement,
// optionally linked to a production order. Append-only: no update or
// delete path exists in this subsystem (corrections belong to the
// financial-manager collaborator).
type FinancialLedgerEntry struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Type          LedgerEntryType `gorm:"type:enum('Income','Expense');not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Concept       string          `gorm:"size:255;not null" json:"concept"`
	Category      string          `gorm:"size:100" json:"category"`
	LinkedOrderId *int            `gorm:"index" json:"linked_order_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// AppendLedgerEntry writes one ledger row inside the caller's transaction.
func AppendLedgerEntry(ctx context.Context, tx *gorm.DB, entry *FinancialLedgerEntry) error {
	return tx.WithContext(ctx).Create(entry).Error
}

// ListLedgerEntriesForOrder returns the entries linked to an order,
// oldest first.
func ListLedgerEntriesForOrder(ctx context.Context, orderId int) ([]FinancialLedgerEntry, error) {
	var entries []FinancialLedgerEntry
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("linked_order_id = ?", orderId).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
