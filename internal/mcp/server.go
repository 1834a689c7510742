// Package mcp exposes the governance engine as MCP tools over stdio,
// so an IDE-like host can submit tasks, check status, and verify
// artifacts through one transport.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/truai/governor/internal/govern"
	"github.com/truai/governor/internal/provider"
)

// Config holds MCP server configuration.
type Config struct {
	// Inference credentials for the execute tool's completion step.
	// Empty BaseURL and APIKey leave execution authorize-and-route
	// only; the host performs the inference call itself.
	APIBaseURL string
	APIKey     string
}

// Server wraps the MCP SDK server around one governance engine.
type Server struct {
	mcpServer *mcpsdk.Server
	engine    *govern.Engine
	client    *provider.Client
}

// New creates an MCP server for the given engine.
func New(engine *govern.Engine, cfg Config) *Server {
	s := &Server{engine: engine}

	if cfg.APIKey != "" || cfg.APIBaseURL != "" {
		s.client = provider.New(cfg.APIKey, cfg.APIBaseURL)
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    govern.EngineName,
			Version: govern.EngineVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport. Blocks until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// registerTools adds all governance tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "truai_execute",
		Description: "Submit a task for governance. Classifies risk, gates on approval, routes to a tier, and (when inference is configured) returns watermarked output.",
	}, s.handleExecute)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "truai_classify",
		Description: "Classify a task's risk level without executing it (dry-run).",
	}, s.handleClassify)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "truai_status",
		Description: "Report engine status: mode, kill switch, audit log size.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "truai_override",
		Description: "Apply an admin override: LIFT_KILL_SWITCH, ACTIVATE_KILL_SWITCH, FORCE_READONLY, or RESTORE_WRITE.",
	}, s.handleOverride)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "truai_verify",
		Description: "Verify whether an artifact carries forensic markers minted by this engine.",
	}, s.handleVerify)
}
