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

// ProductionOrder drives one manufactured order through the canonical
// stage sequence. The stage column is a projection of the append-only
// StageHistory rows and the two are only ever written together.
type ProductionOrder struct {
	ID                int                  `gorm:"primary_key" json:"id"`
	RecipeId          int                  `gorm:"index;not null" json:"recipe_id"`
	ProductName       string               `gorm:"size:255;not null" json:"product_name"`
	Sku               string               `gorm:"size:100;index;not null" json:"sku"`
	Quantity          int                  `gorm:"not null" json:"quantity"`
	Kind              OrderKind            `gorm:"type:enum('ForStock','ForDelivery');default:ForStock" json:"kind"`
	CurrentStage      ProductionStage      `gorm:"size:30;index;not null" json:"current_stage"`
	ClientReference   string               `gorm:"size:255" json:"client_reference"`
	EstimatedDelivery *time.Time           `json:"estimated_delivery"`
	UnitSalePrice     decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"unit_sale_price"`
	TotalSaleValue    decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"total_sale_value"`
	StageHistory      []StageHistory       `gorm:"foreignKey:OrderId" json:"stage_history"`
	LogEntries        []ProductionLogEntry `gorm:"foreignKey:OrderId" json:"log_entries"`
	CreatedAt         time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

// StageHistory rows are append-only; entries are never updated or removed.
type StageHistory struct {
	ID        int             `gorm:"primary_key" json:"id"`
	OrderId   int             `gorm:"index;not null" json:"order_id"`
	Stage     ProductionStage `gorm:"size:30;not null" json:"stage"`
	Forced    bool            `gorm:"default:false" json:"forced"`
	Reason    string          `gorm:"size:255" json:"reason"`
	ActorId   int             `gorm:"not null" json:"actor_id"`
	ActorName string          `gorm:"size:100" json:"actor_name"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewProductionOrder struct {
	RecipeId          int        `json:"recipe_id" binding:"required"`
	Quantity          int        `json:"quantity" binding:"required,gt=0"`
	Kind              OrderKind  `json:"kind" binding:"required,orderkind"`
	ClientReference   string     `json:"client_reference"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

func (input *NewProductionOrder) validate(ctx context.Context) error {
	if input.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if _, err := ParseOrderKind(string(input.Kind)); err != nil {
		return err
	}
	return nil
}

// CreateProductionOrder is the intake path used by the production-request
// collaborator (and by seeding/tests). It resolves the unit sale price and
// seeds the history with the Pending entry in one transaction.
func CreateProductionOrder(ctx context.Context, input *NewProductionOrder) (*ProductionOrder, error) {
	actorId, ok := utils.GetActorIdFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	actorName, _ := utils.GetActorNameFromContext(ctx)

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	recipe, err := GetRecipe(ctx, input.RecipeId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()

	unitPrice := recipe.UnitSalePrice
	if input.Kind == OrderKindForDelivery {
		if price, perr := GetPriceBySKU(ctx, db, recipe.Sku); perr == nil {
			unitPrice = price
		}
	}

	order := ProductionOrder{
		RecipeId:          recipe.ID,
		ProductName:       recipe.Name,
		Sku:               recipe.Sku,
		Quantity:          input.Quantity,
		Kind:              input.Kind,
		CurrentStage:      StagePending,
		ClientReference:   input.ClientReference,
		EstimatedDelivery: input.EstimatedDelivery,
		UnitSalePrice:     unitPrice,
		TotalSaleValue:    unitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
		StageHistory: []StageHistory{
			{Stage: StagePending, ActorId: actorId, ActorName: actorName},
		},
	}

	if err := db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func GetProductionOrder(ctx context.Context, id int) (*ProductionOrder, error) {
	var order ProductionOrder
	db := config.GetDB()
	err := db.WithContext(ctx).
		Preload("StageHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("LogEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at, id")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &order, nil
}

func ListProductionOrders(ctx context.Context, limit int, offset int) ([]*ProductionOrder, error) {
	if limit <= 0 || limit > config.SearchLimit {
		limit = config.SearchLimit
	}
	var orders []*ProductionOrder
	db := config.GetDB()
	err := db.WithContext(ctx).
		Preload("StageHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// LockProductionOrder loads an order FOR UPDATE inside the caller's
// transaction; concurrent advances on the same order serialize here.
// History is preloaded so the order returned after a committed
// transition carries the complete, ordered history.
func LockProductionOrder(ctx context.Context, tx *gorm.DB, id int) (*ProductionOrder, error) {
	var order ProductionOrder
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("StageHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CommitStageTransition writes the stage projection and appends the
// matching history row inside the caller's transaction. Callers own the
// gate checks and side effects that belong to the same transaction.
func CommitStageTransition(ctx context.Context, tx *gorm.DB, order *ProductionOrder, next ProductionStage, forced bool, reason string, actorId int, actorName string) error {
	if err := tx.WithContext(ctx).Model(order).Update("current_stage", next).Error; err != nil {
		return err
	}
	entry := StageHistory{
		OrderId:   order.ID,
		Stage:     next,
		Forced:    forced,
		Reason:    reason,
		ActorId:   actorId,
		ActorName: actorName,
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return err
	}
	order.CurrentStage = next
	order.StageHistory = append(order.StageHistory, entry)
	return nil
}

// DeleteProductionOrder hard deletes an order with its history and log.
// Administrative operation; no stage constraint applies.
func DeleteProductionOrder(ctx context.Context, id int) error {
	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order ProductionOrder
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorRecordNotFound
			}
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&ProductionLogEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&StageHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}
