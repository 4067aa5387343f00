package workflow

import "github.com/mmsteelworks/fabrica_backend/models"

// Actor is the resolved identity performing a transition.
type Actor struct {
	Id   int
	Name string
	Role string
}

// TransitionMode distinguishes a normal advance from an operator override.
type TransitionMode string

const (
	TransitionNormal TransitionMode = "Normal"
	TransitionForced TransitionMode = "Forced"
)

// TransitionRequest is a tagged transition variant: Reason is only
// meaningful for forced transitions and is kept for audit. ExpectedStage,
// when set, binds the advance to the stage the caller observed; a
// mismatch at execution time is a conflict, so two simultaneous advances
// from the same observed stage commit exactly once.
type TransitionRequest struct {
	Mode          TransitionMode
	Reason        string
	ExpectedStage models.ProductionStage
}

func NormalTransition() TransitionRequest {
	return TransitionRequest{Mode: TransitionNormal}
}

func ForcedTransition(reason string) TransitionRequest {
	return TransitionRequest{Mode: TransitionForced, Reason: reason}
}

func (r TransitionRequest) Forced() bool {
	return r.Mode == TransitionForced
}

// LedgerPolicy decides whether the financial gate writes the income
// ledger entry for the given actor. The default policy admits only
// admins; any other role commits the stage change with the ledger write
// silently skipped (recorded, not an error).
type LedgerPolicy func(actor Actor) bool

func DefaultLedgerPolicy(actor Actor) bool {
	return actor.Role == models.RoleAdmin
}
