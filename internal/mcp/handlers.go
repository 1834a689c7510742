package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/truai/governor/internal/model"
	"github.com/truai/governor/internal/risk"
)

// --- Input/Output types ---

// ExecuteInput defines parameters for the truai_execute tool.
type ExecuteInput struct {
	Type          string            `json:"type" jsonschema:"task type tag, e.g. file_edit or refactor"`
	Scope         string            `json:"scope" jsonschema:"blast radius: file, project, system, or global"`
	Target        string            `json:"target" jsonschema:"identifier of the thing being acted on"`
	IsProduction  bool              `json:"is_production,omitempty" jsonschema:"true when the target is production"`
	Message       string            `json:"message" jsonschema:"task prompt text"`
	Context       map[string]string `json:"context,omitempty" jsonschema:"contextual metadata, e.g. code or file keys"`
	Tier          string            `json:"tier,omitempty" jsonschema:"force a tier (cheap/mid/copilot), omit for auto"`
	AdminApproval bool              `json:"admin_approval,omitempty" jsonschema:"set when a human approved the task"`
}

// ExecuteOutput contains the governance result and, when inference is
// configured, the watermarked completion.
type ExecuteOutput struct {
	Success          bool                   `json:"success"`
	RiskLevel        string                 `json:"risk_level"`
	RequiresApproval bool                   `json:"requires_approval,omitempty"`
	Routing          *model.RoutingDecision `json:"routing,omitempty"`
	ForensicID       string                 `json:"forensic_id,omitempty"`
	Output           string                 `json:"output,omitempty"`
	Error            string                 `json:"error,omitempty"`
}

// ClassifyInput defines parameters for the truai_classify tool.
type ClassifyInput struct {
	Type         string `json:"type" jsonschema:"task type tag"`
	Scope        string `json:"scope" jsonschema:"file, project, system, or global"`
	Target       string `json:"target" jsonschema:"identifier of the thing being acted on"`
	IsProduction bool   `json:"is_production,omitempty" jsonschema:"true when the target is production"`
}

// ClassifyOutput contains the risk classification.
type ClassifyOutput struct {
	RiskLevel        string `json:"risk_level"`
	RequiresApproval bool   `json:"requires_approval"`
}

// StatusInput is empty — no parameters needed.
type StatusInput struct{}

// OverrideInput defines parameters for the truai_override tool.
type OverrideInput struct {
	AdminID string `json:"admin_id" jsonschema:"administrator identity"`
	Action  string `json:"action" jsonschema:"LIFT_KILL_SWITCH, ACTIVATE_KILL_SWITCH, FORCE_READONLY, or RESTORE_WRITE"`
	Reason  string `json:"reason,omitempty" jsonschema:"why the override is needed"`
}

// OverrideOutput confirms whether the override was applied.
type OverrideOutput struct {
	Applied bool `json:"applied"`
}

// VerifyInput defines parameters for the truai_verify tool.
type VerifyInput struct {
	Artifact string `json:"artifact" jsonschema:"artifact text to scan for forensic markers"`
}

// --- Handlers ---

func (s *Server) handleExecute(ctx context.Context, req *mcpsdk.CallToolRequest, input ExecuteInput) (*mcpsdk.CallToolResult, ExecuteOutput, error) {
	task := &model.Task{
		Type:          input.Type,
		Scope:         model.Scope(input.Scope),
		Target:        input.Target,
		IsProduction:  input.IsProduction,
		Message:       input.Message,
		Context:       input.Context,
		ForcedTier:    model.Tier(input.Tier),
		AdminApproval: input.AdminApproval,
	}

	result := s.engine.ExecuteTask(task)
	out := ExecuteOutput{
		Success:          result.Success,
		RiskLevel:        string(result.RiskLevel),
		RequiresApproval: result.RequiresApproval,
		Routing:          result.Routing,
		ForensicID:       result.ForensicID,
		Error:            result.Error,
	}
	if !result.Success {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	// The inference call is outside the governance core. When the host
	// configured credentials here, run it and stamp the output; a
	// downstream failure is a task failure, but the routing already
	// stands in the execution log.
	if s.client != nil {
		completion, err := s.client.Complete(ctx, *result.Routing, task.Message)
		if err != nil {
			out.Success = false
			out.Error = err.Error()
			return &mcpsdk.CallToolResult{IsError: true}, out, nil
		}
		out.Output = s.engine.WatermarkOutput(completion, result.ForensicID)
	}

	return nil, out, nil
}

func (s *Server) handleClassify(ctx context.Context, req *mcpsdk.CallToolRequest, input ClassifyInput) (*mcpsdk.CallToolResult, ClassifyOutput, error) {
	level := s.engine.ClassifyRisk(&model.Task{
		Type:         input.Type,
		Scope:        model.Scope(input.Scope),
		Target:       input.Target,
		IsProduction: input.IsProduction,
	})
	return nil, ClassifyOutput{
		RiskLevel:        string(level),
		RequiresApproval: risk.RequiresApproval(level),
	}, nil
}

func (s *Server) handleStatus(ctx context.Context, req *mcpsdk.CallToolRequest, input StatusInput) (*mcpsdk.CallToolResult, model.StatusSnapshot, error) {
	return nil, s.engine.Status(), nil
}

func (s *Server) handleOverride(ctx context.Context, req *mcpsdk.CallToolRequest, input OverrideInput) (*mcpsdk.CallToolResult, OverrideOutput, error) {
	applied := s.engine.AdminOverride(model.AdminOverrideRequest{
		AdminID: input.AdminID,
		Action:  model.OverrideAction(input.Action),
		Reason:  input.Reason,
	})
	if !applied {
		return &mcpsdk.CallToolResult{IsError: true}, OverrideOutput{}, nil
	}
	return nil, OverrideOutput{Applied: true}, nil
}

func (s *Server) handleVerify(ctx context.Context, req *mcpsdk.CallToolRequest, input VerifyInput) (*mcpsdk.CallToolResult, model.VerificationResult, error) {
	return nil, s.engine.VerifyArtifact(input.Artifact), nil
}
