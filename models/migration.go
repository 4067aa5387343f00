package models

import (
	"log"

	"github.com/mmsteelworks/fabrica_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&InventoryItem{},
		&Recipe{}, &RecipeComponent{},
		&Product{},
		&ProductionOrder{}, &StageHistory{},
		&ProductionLogEntry{},
		&FinancialLedgerEntry{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
