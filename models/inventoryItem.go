package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmsteelworks/fabrica_backend/config"
	"github.com/mmsteelworks/fabrica_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryItem is a BOM component with its current stock level. Stock is
// mutated only through ApplyStockDelta inside an active transaction; the
// engine's gate reads the same rows under FOR UPDATE locks so the
// sufficiency check and any mutation observe one snapshot.
type InventoryItem struct {
	ID        int             `gorm:"primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Stock     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"stock"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_cost"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInventoryItem struct {
	Name     string          `json:"name" binding:"required"`
	Stock    decimal.Decimal `json:"stock"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

func CreateInventoryItem(ctx context.Context, input *NewInventoryItem) (*InventoryItem, error) {
	if input.Stock.IsNegative() {
		return nil, ErrNegativeStock
	}
	item := InventoryItem{
		Name:     input.Name,
		Stock:    input.Stock,
		UnitCost: input.UnitCost,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func GetInventoryItem(ctx context.Context, id int) (*InventoryItem, error) {
	return utils.GetResource[InventoryItem](ctx, id)
}

// LockInventoryItems loads the given components FOR UPDATE inside the
// caller's transaction. Missing ids surface as ErrorRecordNotFound.
func LockInventoryItems(ctx context.Context, tx *gorm.DB, ids []int) ([]InventoryItem, error) {
	var items []InventoryItem
	if len(ids) == 0 {
		return items, nil
	}
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) != len(uniqueInts(ids)) {
		return nil, utils.ErrorRecordNotFound
	}
	return items, nil
}

// ApplyStockDelta adjusts a component's stock inside the caller's
// transaction. The row is locked, and a delta that would drive stock
// negative is rejected with ErrNegativeStock.
func ApplyStockDelta(ctx context.Context, tx *gorm.DB, componentId int, delta decimal.Decimal) (*InventoryItem, error) {
	var item InventoryItem
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", componentId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	newStock := item.Stock.Add(delta)
	if newStock.IsNegative() {
		return nil, ErrNegativeStock
	}
	if err := tx.WithContext(ctx).Model(&item).Update("stock", newStock).Error; err != nil {
		return nil, err
	}
	item.Stock = newStock
	return &item, nil
}

// AdjustInventoryStock is the inventory-adjustment collaborator surface:
// one guarded delta in its own transaction.
func AdjustInventoryStock(ctx context.Context, componentId int, delta decimal.Decimal) (*InventoryItem, error) {
	db := config.GetDB()
	var item *InventoryItem
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		item, txErr = ApplyStockDelta(ctx, tx, componentId, delta)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func uniqueInts(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
