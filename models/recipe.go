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

// Recipe maps a finished product to the components required to build one
// unit. Owned by the BOM editor collaborator; the engine only reads it,
// except for the finished-stock increment at the delivery-prep gate.
type Recipe struct {
	ID            int               `gorm:"primary_key" json:"id"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	Sku           string            `gorm:"size:100;index;not null" json:"sku"`
	UnitSalePrice decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"unit_sale_price"`
	FinishedStock int               `gorm:"default:0" json:"finished_stock"`
	Components    []RecipeComponent `gorm:"foreignKey:RecipeId" json:"components"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type RecipeComponent struct {
	ID              int             `gorm:"primary_key" json:"id"`
	RecipeId        int             `gorm:"index;not null" json:"recipe_id"`
	ComponentId     int             `gorm:"index;not null" json:"component_id"`
	QuantityPerUnit decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_per_unit"`
	Position        int             `gorm:"default:0" json:"position"`
}

type NewRecipe struct {
	Name          string               `json:"name" binding:"required"`
	Sku           string               `json:"sku" binding:"required"`
	UnitSalePrice decimal.Decimal      `json:"unit_sale_price"`
	Components    []NewRecipeComponent `json:"components"`
}

type NewRecipeComponent struct {
	ComponentId     int             `json:"component_id" binding:"required"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit" binding:"required"`
}

func (input *NewRecipe) validate(ctx context.Context) error {
	for _, c := range input.Components {
		if err := utils.ValidateResourceId[InventoryItem](ctx, c.ComponentId); err != nil {
			return errors.New("component not found")
		}
		if !c.QuantityPerUnit.IsPositive() {
			return errors.New("quantity per unit must be positive")
		}
	}
	return nil
}

func CreateRecipe(ctx context.Context, input *NewRecipe) (*Recipe, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	components := make([]RecipeComponent, 0, len(input.Components))
	for i, c := range input.Components {
		components = append(components, RecipeComponent{
			ComponentId:     c.ComponentId,
			QuantityPerUnit: c.QuantityPerUnit,
			Position:        i,
		})
	}
	recipe := Recipe{
		Name:          input.Name,
		Sku:           input.Sku,
		UnitSalePrice: input.UnitSalePrice,
		Components:    components,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func GetRecipe(ctx context.Context, id int) (*Recipe, error) {
	recipe, err := utils.GetResource[Recipe](ctx, id, "Components")
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// LockRecipeWithComponents loads a recipe FOR UPDATE inside the caller's
// transaction; the engine uses it at both gates so the BOM read, the
// sufficiency decision and the finished-stock write share one snapshot.
func LockRecipeWithComponents(ctx context.Context, tx *gorm.DB, id int) (*Recipe, error) {
	var recipe Recipe
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// IncrementFinishedStock adds qty pre-built units to the recipe row inside
// the caller's transaction (ForStock side effect of the financial gate).
func IncrementFinishedStock(ctx context.Context, tx *gorm.DB, recipeId int, qty int) error {
	result := tx.WithContext(ctx).Model(&Recipe{}).
		Where("id = ?", recipeId).
		Update("finished_stock", gorm.Expr("finished_stock + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
