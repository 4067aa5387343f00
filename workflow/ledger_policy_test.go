package workflow

import (
	"testing"

	"github.com/mmsteelworks/fabrica_backend/models"
)

func TestDefaultLedgerPolicy(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{models.RoleAdmin, true},
		{models.RoleStaff, false},
		{"", false},
		{"Admin", false}, // roles are case-sensitive claims
	}
	for _, tc := range cases {
		got := DefaultLedgerPolicy(Actor{Id: 1, Name: "x", Role: tc.role})
		if got != tc.want {
			t.Fatalf("DefaultLedgerPolicy(role=%q) = %v; want %v", tc.role, got, tc.want)
		}
	}
}

func TestTransitionRequestVariants(t *testing.T) {
	normal := NormalTransition()
	if normal.Forced() {
		t.Fatal("normal transition must not be forced")
	}
	if normal.Reason != "" {
		t.Fatal("normal transition carries no reason")
	}

	forced := ForcedTransition("missing paint batch, customer pickup today")
	if !forced.Forced() {
		t.Fatal("forced transition must report Forced()")
	}
	if forced.Reason == "" {
		t.Fatal("forced transition must keep the operator reason")
	}
}
