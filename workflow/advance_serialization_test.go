package workflow

import (
	"sync"
	"testing"

	"github.com/mmsteelworks/fabrica_backend/models"
)

// NOTE: These tests are intentionally DB-free. They validate the intended
// advance serialization semantics:
// - concurrent advances on one order serialize (AcquireOrderAdvanceLock
//   plus the FOR UPDATE read on the order row)
// - an advance bound to an observed stage commits at most once
//
// Full DB integration tests live in the models package and require docker.

type fakeOrderStore struct {
	mu    sync.Mutex
	stage models.ProductionStage
}

// advanceFrom models advanceOnce: lock, compare the observed stage,
// commit one step.
func (s *fakeOrderStore) advanceFrom(observed models.ProductionStage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != observed {
		return models.ErrConflict
	}
	next, err := NextStage(s.stage)
	if err != nil {
		return err
	}
	s.stage = next
	return nil
}

func TestSimultaneousAdvancesCommitExactlyOnce(t *testing.T) {
	store := &fakeOrderStore{stage: models.StagePending}
	observed := store.stage

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.advanceFrom(observed)
		}()
	}
	wg.Wait()
	close(errs)

	var successes, conflicts int
	for err := range errs {
		switch err {
		case nil:
			successes++
		case models.ErrConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 successful advance, got %d", successes)
	}
	if conflicts != callers-1 {
		t.Fatalf("expected %d conflicts, got %d", callers-1, conflicts)
	}
	if store.stage != models.StageInPlant {
		t.Fatalf("order must advance exactly one stage, got %s", store.stage)
	}
}

func TestAdvanceAtTerminalNeverMutates(t *testing.T) {
	store := &fakeOrderStore{stage: models.StageDelivered}
	for i := 0; i < 3; i++ {
		if err := store.advanceFrom(models.StageDelivered); err != models.ErrTerminalStage {
			t.Fatalf("expected ErrTerminalStage, got %v", err)
		}
	}
	if store.stage != models.StageDelivered {
		t.Fatalf("terminal order must not move, got %s", store.stage)
	}
}
