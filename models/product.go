package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmsteelworks/fabrica_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog entry resolving a SKU to its public sale price.
// Used only for ForDelivery orders at the financial gate.
type Product struct {
	ID        int             `gorm:"primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Sku       string          `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	SalePrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sale_price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name      string          `json:"name" binding:"required"`
	Sku       string          `json:"sku" binding:"required"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	product := Product{
		Name:      input.Name,
		Sku:       input.Sku,
		SalePrice: input.SalePrice,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetPriceBySKU resolves the public sale price for a SKU on the given
// handle (pass the active transaction to read inside it).
func GetPriceBySKU(ctx context.Context, db *gorm.DB, sku string) (decimal.Decimal, error) {
	var product Product
	err := db.WithContext(ctx).First(&product, "sku = ?", sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrPriceNotFound
		}
		return decimal.Zero, err
	}
	return product.SalePrice, nil
}
