// seed-demo populates a fresh database with demo components, a recipe,
// a catalog product and one production order of each kind.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mmsteelworks/fabrica_backend/config"
	"github.com/mmsteelworks/fabrica_backend/models"
	"github.com/mmsteelworks/fabrica_backend/utils"
	"github.com/shopspring/decimal"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	ctx = utils.SetActorIdInContext(ctx, 1)
	ctx = utils.SetActorNameInContext(ctx, "Seed")
	ctx = utils.SetActorRoleInContext(ctx, models.RoleAdmin)

	sheet, err := models.CreateInventoryItem(ctx, &models.NewInventoryItem{
		Name:     "Steel sheet 2mm",
		Stock:    decimal.NewFromInt(200),
		UnitCost: decimal.NewFromInt(35),
	})
	must(err, "create steel sheet")
	tube, err := models.CreateInventoryItem(ctx, &models.NewInventoryItem{
		Name:     "Square tube 25mm",
		Stock:    decimal.NewFromInt(500),
		UnitCost: decimal.NewFromInt(12),
	})
	must(err, "create square tube")
	paint, err := models.CreateInventoryItem(ctx, &models.NewInventoryItem{
		Name:     "Primer paint (L)",
		Stock:    decimal.NewFromInt(80),
		UnitCost: decimal.NewFromInt(20),
	})
	must(err, "create primer paint")

	recipe, err := models.CreateRecipe(ctx, &models.NewRecipe{
		Name:          "Workshop bench 1.8m",
		Sku:           "BENCH-18",
		UnitSalePrice: decimal.NewFromInt(950),
		Components: []models.NewRecipeComponent{
			{ComponentId: sheet.ID, QuantityPerUnit: decimal.NewFromInt(3)},
			{ComponentId: tube.ID, QuantityPerUnit: decimal.NewFromInt(8)},
			{ComponentId: paint.ID, QuantityPerUnit: decimal.NewFromFloat(0.5)},
		},
	})
	must(err, "create recipe")

	_, err = models.CreateProduct(ctx, &models.NewProduct{
		Name:      "Workshop bench 1.8m",
		Sku:       "BENCH-18",
		SalePrice: decimal.NewFromInt(1100),
	})
	must(err, "create catalog product")

	stockOrder, err := models.CreateProductionOrder(ctx, &models.NewProductionOrder{
		RecipeId: recipe.ID,
		Quantity: 4,
		Kind:     models.OrderKindForStock,
	})
	must(err, "create ForStock order")

	deliveryOrder, err := models.CreateProductionOrder(ctx, &models.NewProductionOrder{
		RecipeId:        recipe.ID,
		Quantity:        2,
		Kind:            models.OrderKindForDelivery,
		ClientReference: "ACME Workshops",
	})
	must(err, "create ForDelivery order")

	fmt.Printf("seeded recipe=%d orders=%d,%d\n", recipe.ID, stockOrder.ID, deliveryOrder.ID)

	// Ready-to-use bearer tokens for poking the API at the seeded data.
	adminToken, err := utils.JwtGenerate(1, "Seed Admin", models.RoleAdmin)
	must(err, "generate admin token")
	staffToken, err := utils.JwtGenerate(2, "Seed Staff", models.RoleStaff)
	must(err, "generate staff token")
	fmt.Printf("admin token: %s\n", adminToken)
	fmt.Printf("staff token: %s\n", staffToken)
}

func must(err error, what string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
		os.Exit(1)
	}
}
