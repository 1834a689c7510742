// Package govern orchestrates risk classification, approval gating,
// tier routing, watermarking, and the audit trail behind one engine.
//
// The engine owns all mutable governance state (system mode, kill
// switch) behind a single mutex. Construct it once at process start
// and hand the same *Engine to every caller; there are no package
// globals.
package govern

import (
	"sync"
	"time"

	"github.com/truai/governor/internal/audit"
	"github.com/truai/governor/internal/config"
	"github.com/truai/governor/internal/model"
	"github.com/truai/governor/internal/risk"
	"github.com/truai/governor/internal/routing"
	"github.com/truai/governor/internal/watermark"
)

// Engine identity reported in every status snapshot.
const (
	EngineName    = "truai-governor"
	EngineVersion = "0.1.0"
)

// Engine is the governance core. Safe for concurrent use.
type Engine struct {
	mu         sync.Mutex
	mode       model.SystemMode
	kill       model.KillSwitch
	adminID    string
	configHash string

	trail   *audit.Trail
	routing *routing.Policy
}

// New constructs an engine from configuration. Sinks, when given,
// mirror the audit trail to durable storage. The engine starts ONLINE
// with the kill switch inactive and logs a SYSTEM_INIT entry.
func New(cfg *config.Config, configHash string, sinks ...audit.Sink) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	e := &Engine{
		mode:       model.ModeOnline,
		adminID:    cfg.AdminID,
		configHash: configHash,
		trail:      audit.NewTrail(sinks...),
		routing:    routing.NewPolicy(cfg.Providers),
	}
	e.trail.Append(audit.SystemInit{
		Engine:     EngineName,
		Version:    EngineVersion,
		ConfigHash: configHash,
	})
	return e
}

// ApplyConfig hot-swaps configuration: admin identity, provider table,
// and the config hash reported in status. Governance state (mode, kill
// switch) is untouched — only admin override moves that.
func (e *Engine) ApplyConfig(cfg *config.Config, configHash string) {
	if cfg == nil {
		return
	}
	e.mu.Lock()
	e.adminID = cfg.AdminID
	e.configHash = configHash
	e.mu.Unlock()
	e.routing.SetProviders(cfg.Providers)
}

// ClassifyRisk classifies a task against the current kill-switch
// state. Read-only; nothing is logged.
func (e *Engine) ClassifyRisk(task *model.Task) model.RiskLevel {
	e.mu.Lock()
	killed := e.kill.Active
	e.mu.Unlock()
	return risk.Classify(task, killed)
}

// ExecuteTask authorizes and routes one task. It does not perform the
// inference call; the caller hands the produced output back through
// WatermarkOutput afterwards. Every attempt produces exactly one
// TASK_EXECUTION audit entry before returning.
func (e *Engine) ExecuteTask(task *model.Task) model.ExecutionResult {
	if task == nil || task.Type == "" {
		e.trail.Append(audit.TaskExecution{
			RiskLevel: model.RiskSafe,
			Reason:    "malformed task: missing type",
			Status:    audit.TaskInvalid,
		})
		return model.ExecutionResult{
			Success:   false,
			RiskLevel: model.RiskSafe,
			Error:     "malformed task: missing type",
		}
	}

	e.mu.Lock()
	mode := e.mode
	killed := e.kill.Active
	e.mu.Unlock()

	// Read-only posture refuses before risk is even consulted.
	if mode == model.ModeOfflineReadonly {
		e.trail.Append(audit.TaskExecution{
			TaskType:  task.Type,
			Scope:     task.Scope,
			Target:    task.Target,
			RiskLevel: model.RiskLocked,
			Reason:    "system is offline/read-only",
			Status:    audit.TaskRefusedOffline,
		})
		return model.ExecutionResult{
			Success:   false,
			RiskLevel: model.RiskLocked,
			Error:     "system is offline/read-only",
		}
	}

	level, reason := risk.ClassifyWithReason(task, killed)

	if risk.RequiresApproval(level) && !task.AdminApproval {
		e.trail.Append(audit.TaskExecution{
			TaskType:  task.Type,
			Scope:     task.Scope,
			Target:    task.Target,
			RiskLevel: level,
			Reason:    reason,
			Status:    audit.TaskPendingApproval,
		})
		return model.ExecutionResult{
			Success:          false,
			RiskLevel:        level,
			RequiresApproval: true,
		}
	}

	decision, err := e.routing.Route(task)
	if err != nil {
		e.trail.Append(audit.TaskExecution{
			TaskType:  task.Type,
			Scope:     task.Scope,
			Target:    task.Target,
			RiskLevel: level,
			Reason:    err.Error(),
			Status:    audit.TaskInvalid,
		})
		return model.ExecutionResult{
			Success:   false,
			RiskLevel: level,
			Error:     err.Error(),
		}
	}

	e.trail.Append(audit.TaskExecution{
		TaskType:  task.Type,
		Scope:     task.Scope,
		Target:    task.Target,
		RiskLevel: level,
		Reason:    reason,
		Status:    audit.TaskRouted,
		Routing:   &decision,
	})

	return model.ExecutionResult{
		Success:    true,
		RiskLevel:  level,
		Routing:    &decision,
		ForensicID: decision.ForensicID,
	}
}

// AdminOverride applies a privileged management action. The request's
// admin id must match the configured administrator identity; any
// mismatch or unrecognized action is denied, logged, and leaves state
// untouched.
func (e *Engine) AdminOverride(req model.AdminOverrideRequest) bool {
	e.mu.Lock()
	adminID := e.adminID
	e.mu.Unlock()

	if req.AdminID != adminID {
		e.trail.Append(audit.OverrideDenied{
			AdminID: req.AdminID,
			Action:  req.Action,
			Reason:  "admin identity mismatch",
		})
		return false
	}

	e.mu.Lock()
	switch req.Action {
	case model.LiftKillSwitch:
		e.kill = model.KillSwitch{}
	case model.ActivateKillSwitch:
		e.kill = model.KillSwitch{
			Active:      true,
			Reason:      req.Reason,
			ActivatedAt: time.Now().UTC(),
		}
	case model.ForceReadonly:
		e.mode = model.ModeOfflineReadonly
	case model.RestoreWrite:
		e.mode = model.ModeOnline
	default:
		e.mu.Unlock()
		e.trail.Append(audit.OverrideDenied{
			AdminID: req.AdminID,
			Action:  req.Action,
			Reason:  "unrecognized action",
		})
		return false
	}
	e.mu.Unlock()

	e.trail.Append(audit.OverrideExecuted{
		AdminID: req.AdminID,
		Action:  req.Action,
		Reason:  req.Reason,
	})
	return true
}

// EmergencyStop is the programmatic kill-switch trigger for the host.
// It has the same audit contract as an admin-driven activation and is
// lifted the same way — via AdminOverride.
func (e *Engine) EmergencyStop(reason string) {
	e.mu.Lock()
	e.kill = model.KillSwitch{
		Active:      true,
		Reason:      reason,
		ActivatedAt: time.Now().UTC(),
	}
	e.mu.Unlock()

	e.trail.Append(audit.KillSwitchToggled{Active: true, Reason: reason})
}

// Status returns a read-only snapshot of engine state. No side effects.
func (e *Engine) Status() model.StatusSnapshot {
	e.mu.Lock()
	mode := e.mode
	kill := e.kill
	hash := e.configHash
	e.mu.Unlock()

	return model.StatusSnapshot{
		Engine:         EngineName,
		Version:        EngineVersion,
		Mode:           mode,
		KillSwitch:     kill,
		AuditEntries:   e.trail.Len(),
		ExecutionCount: e.routing.Len(),
		ConfigHash:     hash,
	}
}

// AuditLog returns a read-only snapshot of the audit trail.
func (e *Engine) AuditLog() []audit.Entry {
	return e.trail.ReadAll()
}

// ExecutionLog returns a read-only snapshot of all routing decisions.
func (e *Engine) ExecutionLog() []model.RoutingDecision {
	return e.routing.ExecutionLog()
}

// WatermarkOutput stamps externally produced output with a forensic id.
func (e *Engine) WatermarkOutput(text, forensicID string) string {
	return watermark.Stamp(text, forensicID)
}

// VerifyArtifact scans text for forensic markers minted by this engine.
func (e *Engine) VerifyArtifact(text string) model.VerificationResult {
	return watermark.Verify(text)
}
