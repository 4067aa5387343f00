package workflow

import (
	"fmt"

	"github.com/mmsteelworks/fabrica_backend/models"
)

// StageSequence is the canonical production stage order. Advances move
// exactly one index forward; StageDelivered is terminal.
var StageSequence = []models.ProductionStage{
	models.StagePending,
	models.StageInPlant,
	models.StageCuttingAndBending,
	models.StageWelding,
	models.StagePaintPrep,
	models.StagePaintPrimary,
	models.StagePaintFinal,
	models.StageQualityCheckInitial,
	models.StageAssembly,
	models.StageQualityCheckFinal,
	models.StageDeliveryPrep,
	models.StageReadyForPickup,
	models.StageDelivered,
}

// StageIndex returns the position of a stage in the canonical sequence,
// or an error for a stage name outside it.
func StageIndex(stage models.ProductionStage) (int, error) {
	for i, s := range StageSequence {
		if s == stage {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown production stage: %q", stage)
}

// NextStage resolves the stage one index after current.
// Returns models.ErrTerminalStage when current is already Delivered.
func NextStage(current models.ProductionStage) (models.ProductionStage, error) {
	idx, err := StageIndex(current)
	if err != nil {
		return "", err
	}
	if idx == len(StageSequence)-1 {
		return "", models.ErrTerminalStage
	}
	return StageSequence[idx+1], nil
}

// IsTerminal reports whether the stage ends the sequence.
func IsTerminal(stage models.ProductionStage) bool {
	return stage == StageSequence[len(StageSequence)-1]
}
