package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-sql-driver/mysql"
	"github.com/mmsteelworks/fabrica_backend/config"
	"github.com/mmsteelworks/fabrica_backend/models"
	"github.com/mmsteelworks/fabrica_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultAdvanceRetries = 3

// AdvanceResult is the outcome of one committed stage transition.
// LedgerSkipped records the silent role-gated omission of the income
// entry at the financial gate (not an error).
type AdvanceResult struct {
	Order         *models.ProductionOrder `json:"order"`
	LedgerSkipped bool                    `json:"ledger_skipped"`
}

// AdvanceOrder moves an order exactly one stage forward, evaluating the
// stock gate (InPlant) and the financial gate (DeliveryPrep) inside the
// same transaction that commits the stage change and its history entry.
func AdvanceOrder(ctx context.Context, orderId int) (*AdvanceResult, error) {
	return advanceOrder(ctx, orderId, NormalTransition(), DefaultLedgerPolicy)
}

// AdvanceOrderFrom advances only if the order is still at the stage the
// caller observed; otherwise the call fails with models.ErrConflict and
// no state changes.
func AdvanceOrderFrom(ctx context.Context, orderId int, observed models.ProductionStage) (*AdvanceResult, error) {
	req := NormalTransition()
	req.ExpectedStage = observed
	return advanceOrder(ctx, orderId, req, DefaultLedgerPolicy)
}

// ForceAdvanceOrder moves an order one stage forward unconditionally,
// bypassing the stock gate and all side effects. The history entry is
// marked forced with the operator's reason for audit.
func ForceAdvanceOrder(ctx context.Context, orderId int, reason string) (*AdvanceResult, error) {
	return advanceOrder(ctx, orderId, ForcedTransition(reason), DefaultLedgerPolicy)
}

func advanceOrder(ctx context.Context, orderId int, req TransitionRequest, policy LedgerPolicy) (*AdvanceResult, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Redis lock is a best-effort optimization. Correctness must not
	// depend on Redis: advances are also serialized via the MySQL
	// advisory lock and the FOR UPDATE read on the order row.
	var lock *redislock.Lock
	if locker := config.GetRedisLock(); locker != nil {
		lock, _ = locker.Obtain(ctx, fmt.Sprintf("advance:%d", orderId), 30*time.Second, nil)
	}
	if lock != nil {
		defer lock.Release(context.WithoutCancel(ctx))
	}

	maxRetries := intFromEnv("ADVANCE_MAX_RETRIES", defaultAdvanceRetries)
	logger := config.GetLogger()

	var result *AdvanceResult
	for attempt := 1; ; attempt++ {
		result, err = advanceOnce(ctx, orderId, req, actor, policy)
		if err == nil {
			return result, nil
		}
		if !isRetryableTxError(err) {
			return nil, err
		}
		if attempt >= maxRetries {
			config.LogError(logger, "advanceWorkflow.go", "advanceOrder", "retries exhausted", map[string]interface{}{
				"order_id": orderId,
				"attempts": attempt,
			}, err)
			return nil, models.ErrConflict
		}
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}
}

func advanceOnce(ctx context.Context, orderId int, req TransitionRequest, actor Actor, policy LedgerPolicy) (*AdvanceResult, error) {
	db := config.GetDB()
	result := &AdvanceResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Enforce strict per-order ordering across instances.
		if err := AcquireOrderAdvanceLock(tx.WithContext(ctx), orderId); err != nil {
			return err
		}
		defer ReleaseOrderAdvanceLock(tx.WithContext(ctx), orderId)

		order, err := models.LockProductionOrder(ctx, tx, orderId)
		if err != nil {
			return err
		}

		if req.ExpectedStage != "" && order.CurrentStage != req.ExpectedStage {
			return models.ErrConflict
		}

		next, err := NextStage(order.CurrentStage)
		if err != nil {
			return err
		}

		if !req.Forced() {
			switch next {
			case models.StageInPlant:
				if err := checkStockGate(ctx, tx, order); err != nil {
					return err
				}
			case models.StageDeliveryPrep:
				skipped, err := applyFinancialGate(ctx, tx, order, actor, policy)
				if err != nil {
					return err
				}
				result.LedgerSkipped = skipped
			}
		}

		if err := models.CommitStageTransition(ctx, tx, order, next, req.Forced(), req.Reason, actor.Id, actor.Name); err != nil {
			return err
		}
		result.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkStockGate verifies BOM sufficiency for the whole order quantity.
// The recipe and every component row are read under FOR UPDATE locks in
// the transaction that commits the transition, so the check and any
// competing stock mutation observe the same snapshot.
func checkStockGate(ctx context.Context, tx *gorm.DB, order *models.ProductionOrder) error {
	recipe, err := models.LockRecipeWithComponents(ctx, tx, order.RecipeId)
	if err != nil {
		return err
	}

	requirements := RequiredComponents(recipe, order.Quantity)
	ids := make([]int, 0, len(requirements))
	for _, r := range requirements {
		ids = append(ids, r.ComponentId)
	}
	items, err := models.LockInventoryItems(ctx, tx, ids)
	if err != nil {
		return err
	}

	if shortages := FindShortages(requirements, items); len(shortages) > 0 {
		return &models.InsufficientStockError{Shortages: shortages}
	}
	return nil
}

// applyFinancialGate applies exactly one side effect for the DeliveryPrep
// transition: finished-stock increment for ForStock orders, or one income
// ledger entry for ForDelivery orders when the policy admits the actor.
func applyFinancialGate(ctx context.Context, tx *gorm.DB, order *models.ProductionOrder, actor Actor, policy LedgerPolicy) (ledgerSkipped bool, err error) {
	switch order.Kind {
	case models.OrderKindForStock:
		if err := models.IncrementFinishedStock(ctx, tx, order.RecipeId, order.Quantity); err != nil {
			return false, err
		}
		return false, nil

	case models.OrderKindForDelivery:
		price, err := models.GetPriceBySKU(ctx, tx, order.Sku)
		if err != nil {
			return false, err
		}
		if !policy(actor) {
			return true, nil
		}
		orderId := order.ID
		entry := models.FinancialLedgerEntry{
			Type:          models.LedgerEntryTypeIncome,
			Amount:        price.Mul(decimal.NewFromInt(int64(order.Quantity))),
			Concept:       fmt.Sprintf("Sale of %d x %s", order.Quantity, order.ProductName),
			Category:      "Production",
			LinkedOrderId: &orderId,
		}
		if err := models.AppendLedgerEntry(ctx, tx, &entry); err != nil {
			return false, err
		}
		return false, nil

	default:
		return false, fmt.Errorf("unknown order kind: %q", order.Kind)
	}
}

func actorFromContext(ctx context.Context) (Actor, error) {
	id, ok := utils.GetActorIdFromContext(ctx)
	if !ok {
		return Actor{}, models.ErrActorMissing
	}
	name, _ := utils.GetActorNameFromContext(ctx)
	role, _ := utils.GetActorRoleFromContext(ctx)
	return Actor{Id: id, Name: name, Role: role}, nil
}

// isRetryableTxError matches MySQL deadlock (1213) and lock wait timeout
// (1205); the loser of a conflicting advance re-runs with a fresh read.
func isRetryableTxError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
