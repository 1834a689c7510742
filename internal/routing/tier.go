// Package routing selects a cost-appropriate inference tier for an
// approved task and mints the forensic identifier that travels with
// its output.
package routing

import (
	"strings"

	"github.com/truai/governor/internal/model"
)

// Word-count thresholds for the tier heuristic.
const (
	cheapWordLimit = 20
	midWordLimit   = 100
)

// SelectTier picks a concrete tier for the task. A caller-forced tier
// always wins; TierAuto is resolved here in a single step, so the
// return value never contains TierAuto.
func SelectTier(task *model.Task) model.Tier {
	if task.ForcedTier != "" && task.ForcedTier != model.TierAuto {
		return task.ForcedTier
	}
	return heuristicTier(task)
}

// heuristicTier classifies message length and code context. Its return
// type excludes TierAuto by construction.
func heuristicTier(task *model.Task) model.Tier {
	words := len(strings.Fields(task.Message))
	switch {
	case words < cheapWordLimit && !task.HasCodeContext():
		return model.TierCheap
	case words < midWordLimit:
		return model.TierMid
	default:
		return model.TierCopilot
	}
}
