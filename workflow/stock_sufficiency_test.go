package workflow

import (
	"testing"

	"github.com/mmsteelworks/fabrica_backend/models"
	"github.com/shopspring/decimal"
)

func benchRecipe() *models.Recipe {
	return &models.Recipe{
		ID: 1,
		Components: []models.RecipeComponent{
			{RecipeId: 1, ComponentId: 101, QuantityPerUnit: decimal.NewFromInt(3)},
			{RecipeId: 1, ComponentId: 102, QuantityPerUnit: decimal.NewFromInt(2)},
		},
	}
}

func TestRequiredComponentsScalesByQuantity(t *testing.T) {
	reqs := RequiredComponents(benchRecipe(), 4)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if !reqs[0].Required.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("component 101: expected 12, got %s", reqs[0].Required)
	}
	if !reqs[1].Required.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("component 102: expected 8, got %s", reqs[1].Required)
	}
}

func TestFindShortagesReportsEachShortComponent(t *testing.T) {
	reqs := RequiredComponents(benchRecipe(), 4)
	items := []models.InventoryItem{
		{ID: 101, Name: "Steel sheet", Stock: decimal.NewFromInt(10)},
		{ID: 102, Name: "Square tube", Stock: decimal.NewFromInt(50)},
	}

	shortages := FindShortages(reqs, items)
	if len(shortages) != 1 {
		t.Fatalf("expected exactly 1 shortage, got %d", len(shortages))
	}
	s := shortages[0]
	if s.ComponentId != 101 {
		t.Fatalf("expected shortage for component 101, got %d", s.ComponentId)
	}
	if !s.Required.Equal(decimal.NewFromInt(12)) || !s.Available.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected required=12 available=10, got required=%s available=%s", s.Required, s.Available)
	}
}

func TestFindShortagesSufficientStock(t *testing.T) {
	reqs := RequiredComponents(benchRecipe(), 4)
	items := []models.InventoryItem{
		{ID: 101, Stock: decimal.NewFromInt(12)},
		{ID: 102, Stock: decimal.NewFromInt(8)},
	}
	if shortages := FindShortages(reqs, items); len(shortages) != 0 {
		t.Fatalf("expected no shortages, got %v", shortages)
	}
}

func TestFindShortagesMissingComponentCountsAsZero(t *testing.T) {
	reqs := RequiredComponents(benchRecipe(), 1)
	items := []models.InventoryItem{
		{ID: 101, Stock: decimal.NewFromInt(3)},
	}
	shortages := FindShortages(reqs, items)
	if len(shortages) != 1 {
		t.Fatalf("expected 1 shortage, got %d", len(shortages))
	}
	if shortages[0].ComponentId != 102 || !shortages[0].Available.IsZero() {
		t.Fatalf("expected component 102 with zero availability, got %+v", shortages[0])
	}
}

func TestRequiredComponentsAggregatesDuplicateLines(t *testing.T) {
	// The same component may appear on several BOM lines; the gate must
	// compare stock against the joint requirement.
	recipe := &models.Recipe{
		Components: []models.RecipeComponent{
			{ComponentId: 101, QuantityPerUnit: decimal.NewFromInt(3)},
			{ComponentId: 102, QuantityPerUnit: decimal.NewFromInt(1)},
			{ComponentId: 101, QuantityPerUnit: decimal.NewFromInt(2)},
		},
	}
	reqs := RequiredComponents(recipe, 1)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 aggregated requirements, got %d", len(reqs))
	}
	if reqs[0].ComponentId != 101 || !reqs[0].Required.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("component 101: expected aggregated requirement 5, got %+v", reqs[0])
	}

	items := []models.InventoryItem{
		{ID: 101, Name: "Steel sheet", Stock: decimal.NewFromInt(4)},
		{ID: 102, Name: "Square tube", Stock: decimal.NewFromInt(1)},
	}
	shortages := FindShortages(reqs, items)
	if len(shortages) != 1 {
		t.Fatalf("expected 1 shortage for the joint requirement, got %d", len(shortages))
	}
	s := shortages[0]
	if s.ComponentId != 101 || !s.Required.Equal(decimal.NewFromInt(5)) || !s.Available.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected {101, required 5, available 4}, got %+v", s)
	}
}

func TestFindShortagesFractionalQuantities(t *testing.T) {
	recipe := &models.Recipe{
		Components: []models.RecipeComponent{
			{ComponentId: 201, QuantityPerUnit: decimal.NewFromFloat(0.5)},
		},
	}
	reqs := RequiredComponents(recipe, 5)
	if !reqs[0].Required.Equal(decimal.NewFromFloat(2.5)) {
		t.Fatalf("expected 2.5, got %s", reqs[0].Required)
	}
	items := []models.InventoryItem{{ID: 201, Stock: decimal.NewFromFloat(2.4)}}
	if shortages := FindShortages(reqs, items); len(shortages) != 1 {
		t.Fatal("expected fractional shortage to be detected")
	}
}
