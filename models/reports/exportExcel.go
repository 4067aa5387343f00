package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// WriteProductionStatusExcel renders the production status report rows
// as an xlsx workbook into w.
func WriteProductionStatusExcel(w io.Writer, data []*ProductionStatusResponse) error {
	f := excelize.NewFile()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return err
	}

	headings := []string{"OrderId", "ProductName", "Sku", "Kind", "Quantity", "CurrentStage", "ForcedCount", "TotalSaleValue"}
	for i, h := range headings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}
	for i, d := range data {
		row := i + 2
		values := []interface{}{d.OrderId, d.ProductName, d.Sku, d.Kind, d.Quantity, d.CurrentStage, d.ForcedCount, d.TotalSaleValue.String()}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// WriteComponentShortageExcel renders the component shortage report rows
// as an xlsx workbook into w.
func WriteComponentShortageExcel(w io.Writer, data []*ComponentShortageResponse) error {
	f := excelize.NewFile()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return err
	}

	headings := []string{"ComponentId", "ComponentName", "Available", "Demand", "Shortfall"}
	for i, h := range headings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}
	for i, d := range data {
		row := i + 2
		values := []interface{}{d.ComponentId, d.ComponentName, d.Available.String(), d.Demand.String(), d.Shortfall.String()}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
