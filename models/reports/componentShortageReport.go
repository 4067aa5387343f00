package reports

import (
	"context"

	"github.com/mmsteelworks/fabrica_backend/config"
	"github.com/shopspring/decimal"
)

type ComponentShortageResponse struct {
	ComponentId   int             `json:"componentId"`
	ComponentName string          `json:"componentName"`
	Available     decimal.Decimal `json:"available"`
	Demand        decimal.Decimal `json:"demand"`
	Shortfall     decimal.Decimal `json:"shortfall"`
}

// GetComponentShortageReport aggregates BOM demand from orders still in
// front of the stock gate (Pending) against current component stock and
// returns the components whose demand exceeds availability. This is a
// planning read model only; the gate itself never aggregates across
// orders.
func GetComponentShortageReport(ctx context.Context) ([]*ComponentShortageResponse, error) {
	sql := `
WITH Demand AS (
    SELECT
        rc.component_id,
        SUM(rc.quantity_per_unit * po.quantity) AS demand
    FROM production_orders po
    JOIN recipe_components rc ON rc.recipe_id = po.recipe_id
    WHERE po.current_stage = 'Pending'
    GROUP BY rc.component_id
)
SELECT
    ii.id AS component_id,
    ii.name AS component_name,
    ii.stock AS available,
    COALESCE(d.demand, 0) AS demand,
    COALESCE(d.demand, 0) - ii.stock AS shortfall
FROM inventory_items ii
JOIN Demand d ON d.component_id = ii.id
WHERE COALESCE(d.demand, 0) > ii.stock
ORDER BY ii.name;
`
	var records []*ComponentShortageResponse
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql).Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
