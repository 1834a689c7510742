package govern

import (
	"strings"
	"sync"
	"testing"

	"github.com/truai/governor/internal/audit"
	"github.com/truai/governor/internal/config"
	"github.com/truai/governor/internal/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.AdminID = "root-ops"
	return New(cfg, "sha256:testcfg")
}

func safeTask() *model.Task {
	return &model.Task{
		Type:    "file_edit",
		Scope:   model.ScopeProject,
		Target:  "readme.md",
		Message: "fix a typo",
	}
}

func elevatedTask() *model.Task {
	return &model.Task{
		Type:         "refactor",
		Scope:        model.ScopeProject,
		Target:       "cart.ts",
		IsProduction: true,
		Message:      "extract the pricing helper",
	}
}

func TestNewLogsSystemInit(t *testing.T) {
	e := newTestEngine(t)
	entries := e.AuditLog()
	if len(entries) != 1 || entries[0].Event != audit.EventSystemInit {
		t.Fatalf("entries = %+v, want single SYSTEM_INIT", entries)
	}
	if entries[0].ID != 1 {
		t.Fatalf("first entry id = %d, want 1", entries[0].ID)
	}
}

func TestExecuteSafeTaskRoutes(t *testing.T) {
	e := newTestEngine(t)

	res := e.ExecuteTask(safeTask())
	if !res.Success {
		t.Fatalf("result = %+v, want success", res)
	}
	if res.RiskLevel != model.RiskSafe {
		t.Fatalf("risk = %s, want SAFE", res.RiskLevel)
	}
	if res.Routing == nil || res.ForensicID == "" {
		t.Fatalf("missing routing decision: %+v", res)
	}
	if res.Routing.Tier == model.TierAuto {
		t.Fatal("routing decision carries tier auto")
	}

	if got := e.ExecutionLog(); len(got) != 1 {
		t.Fatalf("execution log length = %d, want 1", len(got))
	}

	last := e.AuditLog()[1]
	if last.Event != audit.EventTaskExecution {
		t.Fatalf("event = %s, want TASK_EXECUTION", last.Event)
	}
	payload := last.Payload.(audit.TaskExecution)
	if payload.Status != audit.TaskRouted || payload.Routing == nil {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestExecuteElevatedTaskGatesOnApproval(t *testing.T) {
	e := newTestEngine(t)

	res := e.ExecuteTask(elevatedTask())
	if res.Success || !res.RequiresApproval {
		t.Fatalf("result = %+v, want pending approval", res)
	}
	if res.RiskLevel != model.RiskElevated {
		t.Fatalf("risk = %s, want ELEVATED", res.RiskLevel)
	}
	if res.Routing != nil {
		t.Fatal("pending task must not be routed")
	}
	if len(e.ExecutionLog()) != 0 {
		t.Fatal("pending task must not appear in execution log")
	}

	// Same task with approval gets through.
	approved := elevatedTask()
	approved.AdminApproval = true
	res = e.ExecuteTask(approved)
	if !res.Success || res.Routing == nil {
		t.Fatalf("approved result = %+v", res)
	}
}

func TestExecuteRefusesWhileOfflineReadonly(t *testing.T) {
	e := newTestEngine(t)
	if !e.AdminOverride(model.AdminOverrideRequest{AdminID: "root-ops", Action: model.ForceReadonly, Reason: "maintenance"}) {
		t.Fatal("force readonly rejected")
	}

	res := e.ExecuteTask(safeTask())
	if res.Success {
		t.Fatal("offline engine must refuse tasks")
	}
	if res.RiskLevel != model.RiskLocked {
		t.Fatalf("risk = %s, want LOCKED", res.RiskLevel)
	}
	if !strings.Contains(res.Error, "read-only") {
		t.Fatalf("error = %q", res.Error)
	}

	if !e.AdminOverride(model.AdminOverrideRequest{AdminID: "root-ops", Action: model.RestoreWrite}) {
		t.Fatal("restore write rejected")
	}
	if res := e.ExecuteTask(safeTask()); !res.Success {
		t.Fatalf("after restore, result = %+v", res)
	}
}

func TestKillSwitchForcesLocked(t *testing.T) {
	e := newTestEngine(t)
	if !e.AdminOverride(model.AdminOverrideRequest{AdminID: "root-ops", Action: model.ActivateKillSwitch, Reason: "incident-42"}) {
		t.Fatal("activation rejected")
	}

	if got := e.ClassifyRisk(safeTask()); got != model.RiskLocked {
		t.Fatalf("classify under kill switch = %s, want LOCKED", got)
	}

	status := e.Status()
	if !status.KillSwitch.Active || status.KillSwitch.Reason != "incident-42" {
		t.Fatalf("status kill switch = %+v", status.KillSwitch)
	}

	res := e.ExecuteTask(safeTask())
	if res.Success || res.RiskLevel != model.RiskLocked || !res.RequiresApproval {
		t.Fatalf("result under kill switch = %+v", res)
	}

	if !e.AdminOverride(model.AdminOverrideRequest{AdminID: "root-ops", Action: model.LiftKillSwitch, Reason: "resolved"}) {
		t.Fatal("lift rejected")
	}
	if got := e.ClassifyRisk(safeTask()); got != model.RiskSafe {
		t.Fatalf("classify after lift = %s, want SAFE", got)
	}
}

func TestEmergencyStopActsLikeActivation(t *testing.T) {
	e := newTestEngine(t)
	before := len(e.AuditLog())

	e.EmergencyStop("host panic")

	if got := e.ClassifyRisk(safeTask()); got != model.RiskLocked {
		t.Fatalf("classify after emergency stop = %s", got)
	}
	entries := e.AuditLog()
	if len(entries) != before+1 {
		t.Fatalf("emergency stop logged %d entries, want 1", len(entries)-before)
	}
	if entries[len(entries)-1].Event != audit.EventKillSwitch {
		t.Fatalf("event = %s, want KILL_SWITCH", entries[len(entries)-1].Event)
	}
}

func TestOverrideDeniedLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t)
	before := e.Status()

	if e.AdminOverride(model.AdminOverrideRequest{AdminID: "intruder", Action: model.ActivateKillSwitch, Reason: "nope"}) {
		t.Fatal("mismatched admin id accepted")
	}

	after := e.Status()
	if after.Mode != before.Mode || after.KillSwitch.Active != before.KillSwitch.Active {
		t.Fatalf("denied override changed state: %+v -> %+v", before, after)
	}
	if after.AuditEntries != before.AuditEntries+1 {
		t.Fatalf("denied override logged %d entries, want exactly 1", after.AuditEntries-before.AuditEntries)
	}

	last := e.AuditLog()[after.AuditEntries-1]
	if last.Event != audit.EventOverrideDenied {
		t.Fatalf("event = %s, want ADMIN_OVERRIDE_DENIED", last.Event)
	}
}

func TestOverrideUnrecognizedActionDenied(t *testing.T) {
	e := newTestEngine(t)
	if e.AdminOverride(model.AdminOverrideRequest{AdminID: "root-ops", Action: "SELF_DESTRUCT"}) {
		t.Fatal("unrecognized action accepted")
	}
	entries := e.AuditLog()
	last := entries[len(entries)-1]
	if last.Event != audit.EventOverrideDenied {
		t.Fatalf("event = %s, want ADMIN_OVERRIDE_DENIED", last.Event)
	}
	payload := last.Payload.(audit.OverrideDenied)
	if payload.Reason != "unrecognized action" {
		t.Fatalf("reason = %q", payload.Reason)
	}
}

func TestMalformedTaskRejectedBeforeClassification(t *testing.T) {
	e := newTestEngine(t)
	res := e.ExecuteTask(&model.Task{Scope: model.ScopeFile, Target: "x"})
	if res.Success || res.Error == "" {
		t.Fatalf("result = %+v, want validation failure", res)
	}
	if res.RequiresApproval {
		t.Fatal("validation failure is not an approval gate")
	}
}

func TestWatermarkRoundTrip(t *testing.T) {
	e := newTestEngine(t)

	task := safeTask()
	res := e.ExecuteTask(task)
	if !res.Success {
		t.Fatalf("execute: %+v", res)
	}

	stamped := e.WatermarkOutput("generated code here", res.ForensicID)
	verdict := e.VerifyArtifact(stamped)
	if !verdict.Originated || len(verdict.ForensicIDs) != 1 || verdict.ForensicIDs[0] != res.ForensicID {
		t.Fatalf("verdict = %+v, want %s", verdict, res.ForensicID)
	}

	if v := e.VerifyArtifact("plain text"); v.Originated || len(v.ForensicIDs) != 0 {
		t.Fatalf("plain text verdict = %+v", v)
	}
}

func TestConcurrentCallersKeepAuditContiguous(t *testing.T) {
	e := newTestEngine(t)

	const callers = 8
	const perCaller = 25

	var wg sync.WaitGroup
	for c := 0; c < callers; c++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < perCaller; i++ {
				switch n % 3 {
				case 0:
					e.ExecuteTask(safeTask())
				case 1:
					e.ExecuteTask(elevatedTask())
				default:
					e.ClassifyRisk(safeTask())
				}
			}
		}(c)
	}
	wg.Wait()

	entries := e.AuditLog()
	for i, entry := range entries {
		if entry.ID != int64(i)+1 {
			t.Fatalf("entries[%d].ID = %d, want %d", i, entry.ID, i+1)
		}
	}

	status := e.Status()
	if status.AuditEntries != len(entries) {
		t.Fatalf("status reports %d entries, trail has %d", status.AuditEntries, len(entries))
	}
	if status.Engine != EngineName || status.Version != EngineVersion {
		t.Fatalf("status identity = %q %q", status.Engine, status.Version)
	}
}
