package routing

import (
	"regexp"
	"strings"
	"testing"

	"github.com/truai/governor/internal/model"
)

func TestSelectTierHeuristic(t *testing.T) {
	longMsg := strings.Repeat("word ", 150)
	midMsg := strings.Repeat("word ", 50)

	cases := []struct {
		name string
		task model.Task
		want model.Tier
	}{
		{"short no context", model.Task{Message: "rename this variable"}, model.TierCheap},
		{"short with code context", model.Task{Message: "rename this variable", Context: map[string]string{"code": "x"}}, model.TierMid},
		{"medium", model.Task{Message: midMsg}, model.TierMid},
		{"long", model.Task{Message: longMsg}, model.TierCopilot},
		{"forced wins", model.Task{Message: "hi", ForcedTier: model.TierCopilot}, model.TierCopilot},
		{"auto resolves to heuristic", model.Task{Message: "hi", ForcedTier: model.TierAuto}, model.TierCheap},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectTier(&tc.task)
			if got != tc.want {
				t.Fatalf("SelectTier = %s, want %s", got, tc.want)
			}
			if got == model.TierAuto {
				t.Fatal("SelectTier must never return auto")
			}
		})
	}
}

var forensicRe = regexp.MustCompile(`^TRUAI_\d+_[A-Z0-9]+$`)

func TestMintForensicIDShapeAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := MintForensicID()
		if !forensicRe.MatchString(id) {
			t.Fatalf("forensic id %q does not match expected shape", id)
		}
		if seen[id] {
			t.Fatalf("forensic id %q minted twice", id)
		}
		seen[id] = true
	}
}

func TestRouteResolvesProviderAndLogs(t *testing.T) {
	p := NewPolicy(nil)

	task := &model.Task{Type: "refactor", Target: "cart.ts", Message: "tidy up"}
	decision, err := p.Route(task)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision.Tier != model.TierCheap {
		t.Fatalf("tier = %s, want cheap", decision.Tier)
	}
	if decision.Provider == "" || decision.Model == "" {
		t.Fatalf("decision missing provider/model: %+v", decision)
	}
	if !forensicRe.MatchString(decision.ForensicID) {
		t.Fatalf("forensic id %q malformed", decision.ForensicID)
	}

	log := p.ExecutionLog()
	if len(log) != 1 || log[0].ForensicID != decision.ForensicID {
		t.Fatalf("execution log = %+v", log)
	}

	// Snapshot, not a live view.
	log[0].Provider = "tampered"
	if p.ExecutionLog()[0].Provider == "tampered" {
		t.Fatal("execution log mutated through snapshot")
	}
}

func TestRouteUnknownTierFails(t *testing.T) {
	p := NewPolicy(map[model.Tier]Provider{model.TierMid: {Name: "openai", Model: "gpt-4o-mini"}})
	_, err := p.Route(&model.Task{Message: "short", ForcedTier: model.TierCopilot})
	if err == nil {
		t.Fatal("expected error for unconfigured tier")
	}
	if p.Len() != 0 {
		t.Fatal("failed route must not be logged")
	}
}
