package workflow

import (
	"errors"
	"testing"

	"github.com/mmsteelworks/fabrica_backend/models"
)

func TestStageSequenceShape(t *testing.T) {
	if len(StageSequence) != 13 {
		t.Fatalf("expected 13 canonical stages, got %d", len(StageSequence))
	}
	if StageSequence[0] != models.StagePending {
		t.Fatalf("sequence must start at Pending, got %s", StageSequence[0])
	}
	if StageSequence[len(StageSequence)-1] != models.StageDelivered {
		t.Fatalf("sequence must end at Delivered, got %s", StageSequence[len(StageSequence)-1])
	}

	seen := map[models.ProductionStage]bool{}
	for _, s := range StageSequence {
		if seen[s] {
			t.Fatalf("duplicate stage in sequence: %s", s)
		}
		seen[s] = true
	}
}

func TestNextStageAdvancesExactlyOneIndex(t *testing.T) {
	for i, stage := range StageSequence[:len(StageSequence)-1] {
		next, err := NextStage(stage)
		if err != nil {
			t.Fatalf("NextStage(%s): %v", stage, err)
		}
		if next != StageSequence[i+1] {
			t.Fatalf("NextStage(%s) = %s; want %s", stage, next, StageSequence[i+1])
		}
	}
}

func TestNextStageAtTerminal(t *testing.T) {
	_, err := NextStage(models.StageDelivered)
	if !errors.Is(err, models.ErrTerminalStage) {
		t.Fatalf("expected ErrTerminalStage, got %v", err)
	}
	if !IsTerminal(models.StageDelivered) {
		t.Fatal("Delivered must be terminal")
	}
	if IsTerminal(models.StageReadyForPickup) {
		t.Fatal("ReadyForPickup must not be terminal")
	}
}

func TestStageIndexUnknownStage(t *testing.T) {
	if _, err := StageIndex(models.ProductionStage("Shipped")); err == nil {
		t.Fatal("expected error for unknown stage")
	}
}
