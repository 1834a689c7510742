package audit

import "github.com/truai/governor/internal/model"

// Event name constants. These are the only event kinds the trail
// records; payloads are a closed set of typed structs so the log stays
// self-describing and safe to query.
const (
	EventSystemInit     = "SYSTEM_INIT"
	EventTaskExecution  = "TASK_EXECUTION"
	EventOverrideOK     = "ADMIN_OVERRIDE_EXECUTED"
	EventOverrideDenied = "ADMIN_OVERRIDE_DENIED"
	EventKillSwitch     = "KILL_SWITCH"
)

// Event is one governance event payload. Implementations are the
// closed set below; nothing else may be appended to the trail.
type Event interface {
	Kind() string
}

// SystemInit records engine construction.
type SystemInit struct {
	Engine     string `json:"engine"`
	Version    string `json:"version"`
	ConfigHash string `json:"config_hash,omitempty"`
}

func (SystemInit) Kind() string { return EventSystemInit }

// TaskStatus describes the outcome of a task execution attempt.
type TaskStatus string

const (
	TaskRouted          TaskStatus = "routed"
	TaskPendingApproval TaskStatus = "pending_approval"
	TaskRefusedOffline  TaskStatus = "refused_offline"
	TaskInvalid         TaskStatus = "invalid"
)

// TaskExecution records one execution attempt, approved or not.
type TaskExecution struct {
	TaskType  string                 `json:"task_type"`
	Scope     model.Scope            `json:"scope"`
	Target    string                 `json:"target"`
	RiskLevel model.RiskLevel        `json:"risk_level"`
	Reason    string                 `json:"reason,omitempty"`
	Status    TaskStatus             `json:"status"`
	Routing   *model.RoutingDecision `json:"routing,omitempty"`
}

func (TaskExecution) Kind() string { return EventTaskExecution }

// OverrideExecuted records an accepted admin override.
type OverrideExecuted struct {
	AdminID string               `json:"admin_id"`
	Action  model.OverrideAction `json:"action"`
	Reason  string               `json:"reason,omitempty"`
}

func (OverrideExecuted) Kind() string { return EventOverrideOK }

// OverrideDenied records a rejected admin override: identity mismatch
// or an unrecognized action.
type OverrideDenied struct {
	AdminID string               `json:"admin_id"`
	Action  model.OverrideAction `json:"action"`
	Reason  string               `json:"reason"`
}

func (OverrideDenied) Kind() string { return EventOverrideDenied }

// KillSwitchToggled records a programmatic kill-switch flip (the
// host's emergency trigger). Admin-driven flips are recorded as
// OverrideExecuted instead — one observable state change, one entry.
type KillSwitchToggled struct {
	Active bool   `json:"active"`
	Reason string `json:"reason,omitempty"`
}

func (KillSwitchToggled) Kind() string { return EventKillSwitch }
