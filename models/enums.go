package models

import "fmt"

// ProductionStage is one of the 13 canonical stage names. The ordered
// sequence itself lives in the workflow package next to the engine.
type ProductionStage string

const (
	StagePending             ProductionStage = "Pending"
	StageInPlant             ProductionStage = "InPlant"
	StageCuttingAndBending   ProductionStage = "CuttingAndBending"
	StageWelding             ProductionStage = "Welding"
	StagePaintPrep           ProductionStage = "PaintPrep"
	StagePaintPrimary        ProductionStage = "PaintPrimary"
	StagePaintFinal          ProductionStage = "PaintFinal"
	StageQualityCheckInitial ProductionStage = "QualityCheckInitial"
	StageAssembly            ProductionStage = "Assembly"
	StageQualityCheckFinal   ProductionStage = "QualityCheckFinal"
	StageDeliveryPrep        ProductionStage = "DeliveryPrep"
	StageReadyForPickup      ProductionStage = "ReadyForPickup"
	StageDelivered           ProductionStage = "Delivered"
)

type OrderKind string

const (
	OrderKindForStock    OrderKind = "ForStock"
	OrderKindForDelivery OrderKind = "ForDelivery"
)

func ParseOrderKind(s string) (OrderKind, error) {
	switch s {
	case string(OrderKindForStock):
		return OrderKindForStock, nil
	case string(OrderKindForDelivery):
		return OrderKindForDelivery, nil
	default:
		return "", fmt.Errorf("invalid order kind: %q", s)
	}
}

type LedgerEntryType string

const (
	LedgerEntryTypeIncome  LedgerEntryType = "Income"
	LedgerEntryTypeExpense LedgerEntryType = "Expense"
)

type LogEntryKind string

const (
	LogEntryKindNote   LogEntryKind = "Note"
	LogEntryKindSerial LogEntryKind = "Serial"
)

// Actor roles carried in JWT claims. Only RoleAdmin may post to the
// financial ledger at the delivery-prep gate.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)
