package reports

import (
	"context"
	"time"

	"github.com/mmsteelworks/fabrica_backend/config"
	"github.com/shopspring/decimal"
)

type ProductionStatusResponse struct {
	OrderId        int             `json:"orderId"`
	ProductName    string          `json:"productName"`
	Sku            string          `json:"sku"`
	Kind           string          `json:"kind"`
	Quantity       int             `json:"quantity"`
	CurrentStage   string          `json:"currentStage"`
	ForcedCount    int             `json:"forcedCount"`
	TotalSaleValue decimal.Decimal `json:"totalSaleValue"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// GetProductionStatusReport lists every non-delivered order with its
// current stage and how many of its transitions were forced.
func GetProductionStatusReport(ctx context.Context) ([]*ProductionStatusResponse, error) {
	sql := `
SELECT
    po.id AS order_id,
    po.product_name,
    po.sku,
    po.kind,
    po.quantity,
    po.current_stage,
    po.total_sale_value,
    po.created_at,
    COALESCE(sh.forced_count, 0) AS forced_count
FROM production_orders po
LEFT JOIN (
    SELECT order_id, SUM(forced) AS forced_count
    FROM stage_histories
    GROUP BY order_id
) sh ON sh.order_id = po.id
WHERE po.current_stage <> 'Delivered'
ORDER BY po.id;
`
	var records []*ProductionStatusResponse
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql).Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
