package model

import "time"

// Scope classifies how wide a task's blast radius is.
type Scope string

const (
	ScopeFile    Scope = "file"
	ScopeProject Scope = "project"
	ScopeSystem  Scope = "system"
	ScopeGlobal  Scope = "global"
)

// RiskLevel is the outcome of classifying one task.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "SAFE"
	RiskElevated RiskLevel = "ELEVATED"
	RiskLocked   RiskLevel = "LOCKED"
)

// SystemMode is the engine's global read/write posture.
type SystemMode string

const (
	ModeOnline          SystemMode = "ONLINE"
	ModeOfflineReadonly SystemMode = "OFFLINE_READONLY"
)

// Tier is a cost/capability bucket used to route a task to an
// appropriately powerful inference provider. TierAuto is an input-only
// value: it is resolved to a concrete tier before routing and is never
// part of a RoutingDecision.
type Tier string

const (
	TierAuto    Tier = "auto"
	TierCheap   Tier = "cheap"
	TierMid     Tier = "mid"
	TierCopilot Tier = "copilot"
)

// Task is one requested automated action. Immutable after creation;
// the engine never persists it.
type Task struct {
	Type          string            `json:"type"`
	Scope         Scope             `json:"scope"`
	Target        string            `json:"target"`
	IsProduction  bool              `json:"is_production"`
	Message       string            `json:"message"`
	Context       map[string]string `json:"context,omitempty"`
	ForcedTier    Tier              `json:"forced_tier,omitempty"`
	AdminApproval bool              `json:"admin_approval,omitempty"`
}

// HasCodeContext reports whether contextual metadata indicates an
// active code or file context.
func (t *Task) HasCodeContext() bool {
	if t.Context == nil {
		return false
	}
	_, code := t.Context["code"]
	_, file := t.Context["file"]
	return code || file
}

// RoutingDecision is the result of tier/provider selection for one task.
type RoutingDecision struct {
	Tier       Tier      `json:"tier"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	ForensicID string    `json:"forensic_id"`
	TaskType   string    `json:"task_type"`
	Target     string    `json:"target"`
	RoutedAt   time.Time `json:"routed_at"`
}

// ExecutionResult is what ExecuteTask returns to the caller.
// Policy rejections are results, not errors.
type ExecutionResult struct {
	Success          bool             `json:"success"`
	RiskLevel        RiskLevel        `json:"risk_level"`
	RequiresApproval bool             `json:"requires_approval,omitempty"`
	Routing          *RoutingDecision `json:"routing,omitempty"`
	ForensicID       string           `json:"forensic_id,omitempty"`
	Error            string           `json:"error,omitempty"`
}

// OverrideAction is a privileged management action kind.
type OverrideAction string

const (
	LiftKillSwitch     OverrideAction = "LIFT_KILL_SWITCH"
	ActivateKillSwitch OverrideAction = "ACTIVATE_KILL_SWITCH"
	ForceReadonly      OverrideAction = "FORCE_READONLY"
	RestoreWrite       OverrideAction = "RESTORE_WRITE"
)

// AdminOverrideRequest asks the engine to change global state.
// Ephemeral: every request produces exactly one audit entry.
type AdminOverrideRequest struct {
	AdminID string         `json:"admin_id"`
	Action  OverrideAction `json:"action"`
	Reason  string         `json:"reason"`
}

// KillSwitch is the global emergency-stop flag. While active, every
// classification returns RiskLocked unconditionally.
type KillSwitch struct {
	Active      bool      `json:"active"`
	Reason      string    `json:"reason,omitempty"`
	ActivatedAt time.Time `json:"activated_at,omitzero"`
}

// StatusSnapshot is a read-only view of engine state.
type StatusSnapshot struct {
	Engine         string     `json:"engine"`
	Version        string     `json:"version"`
	Mode           SystemMode `json:"mode"`
	KillSwitch     KillSwitch `json:"kill_switch"`
	AuditEntries   int        `json:"audit_entries"`
	ExecutionCount int        `json:"execution_count"`
	ConfigHash     string     `json:"config_hash,omitempty"`
}

// VerificationResult reports forensic markers recovered from an artifact.
type VerificationResult struct {
	Originated  bool     `json:"originated"`
	ForensicIDs []string `json:"forensic_ids"`
}
