// Package risk maps a requested task to a risk level.
//
// Classification is a pure function of the task and the kill-switch
// flag. It never fails: unrecognized tasks degrade to SAFE rather than
// failing closed, because the approval gate downstream is what actually
// blocks execution.
package risk

import (
	"strings"

	"github.com/truai/governor/internal/model"
)

// Classify evaluates precedence rules in order, first match wins:
//
//  1. kill switch active → LOCKED
//  2. high-risk pattern in type+scope+target → LOCKED
//  3. production task → ELEVATED
//  4. system or global scope → ELEVATED
//  5. otherwise → SAFE
func Classify(task *model.Task, killSwitchActive bool) model.RiskLevel {
	level, _ := ClassifyWithReason(task, killSwitchActive)
	return level
}

// ClassifyWithReason is Classify plus the rule that fired, for audit
// records.
func ClassifyWithReason(task *model.Task, killSwitchActive bool) (model.RiskLevel, string) {
	if killSwitchActive {
		return model.RiskLocked, "kill switch active"
	}
	if task == nil {
		return model.RiskSafe, "empty task"
	}

	haystack := strings.ToLower(task.Type + " " + string(task.Scope) + " " + task.Target)
	if name := MatchHighRisk(haystack); name != "" {
		return model.RiskLocked, "high-risk pattern: " + name
	}

	if task.IsProduction {
		return model.RiskElevated, "production target"
	}

	if task.Scope == model.ScopeSystem || task.Scope == model.ScopeGlobal {
		return model.RiskElevated, "scope: " + string(task.Scope)
	}

	return model.RiskSafe, "no risk signal"
}

// RequiresApproval reports whether a risk level gates on human approval.
func RequiresApproval(level model.RiskLevel) bool {
	return level == model.RiskElevated || level == model.RiskLocked
}
