package workflow

import (
	"github.com/mmsteelworks/fabrica_backend/models"
	"github.com/shopspring/decimal"
)

// ComponentRequirement is the quantity of one component an order consumes.
type ComponentRequirement struct {
	ComponentId int
	Required    decimal.Decimal
}

// RequiredComponents computes the gross component requirement vector for
// building qty units of the recipe: quantityPerUnit x qty, summed per
// component. A recipe may list the same component on several BOM lines
// (e.g. a part used in two subassemblies); the gate must see the joint
// requirement, not each line on its own.
// Pure; shared by the stock gate and by planning/reporting reads.
func RequiredComponents(recipe *models.Recipe, qty int) []ComponentRequirement {
	factor := decimal.NewFromInt(int64(qty))
	index := make(map[int]int, len(recipe.Components))
	requirements := make([]ComponentRequirement, 0, len(recipe.Components))
	for _, line := range recipe.Components {
		required := line.QuantityPerUnit.Mul(factor)
		if i, ok := index[line.ComponentId]; ok {
			requirements[i].Required = requirements[i].Required.Add(required)
			continue
		}
		index[line.ComponentId] = len(requirements)
		requirements = append(requirements, ComponentRequirement{
			ComponentId: line.ComponentId,
			Required:    required,
		})
	}
	return requirements
}

// FindShortages compares requirements against the supplied stock levels
// and returns one shortage per component that cannot cover its
// requirement. Empty result means the stock gate passes.
func FindShortages(requirements []ComponentRequirement, items []models.InventoryItem) []models.StockShortage {
	byId := make(map[int]models.InventoryItem, len(items))
	for _, item := range items {
		byId[item.ID] = item
	}

	var shortages []models.StockShortage
	for _, req := range requirements {
		item, ok := byId[req.ComponentId]
		available := decimal.Zero
		name := ""
		if ok {
			available = item.Stock
			name = item.Name
		}
		if available.LessThan(req.Required) {
			shortages = append(shortages, models.StockShortage{
				ComponentId:   req.ComponentId,
				ComponentName: name,
				Required:      req.Required,
				Available:     available,
			})
		}
	}
	return shortages
}
