package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/truai/governor/internal/audit"
	"github.com/truai/governor/internal/config"
	"github.com/truai/governor/internal/govern"
	"github.com/truai/governor/internal/mcp"
)

var serveFlags struct {
	configPath string
	watch      bool
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveFlags.configPath, "config", "", "config file (default ~/.truai/config.yaml)")
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "hot-reload config (admin id, provider table) on file change")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the governance engine over MCP stdio",
	Long:  "Constructs one engine from configuration and exposes it as MCP tools\non stdio. Durable audit mirrors (JSONL chain and/or SQLite) are\nattached when configured.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, hash, err := config.LoadWithHash(serveFlags.configPath)
	if err != nil {
		return err
	}

	var sinks []audit.Sink
	if cfg.AuditLogPath != "" {
		s, err := audit.OpenJSONL(cfg.AuditLogPath)
		if err != nil {
			return fmt.Errorf("open audit mirror: %w", err)
		}
		defer s.Close()
		sinks = append(sinks, s)
	}
	if cfg.AuditDBPath != "" {
		s, err := audit.OpenSQLite(cfg.AuditDBPath)
		if err != nil {
			return fmt.Errorf("open audit database: %w", err)
		}
		defer s.Close()
		sinks = append(sinks, s)
	}

	engine := govern.New(cfg, hash, sinks...)
	server := mcp.New(engine, mcp.Config{
		APIBaseURL: cfg.API.BaseURL,
		APIKey:     cfg.API.APIKey,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveFlags.watch {
		path := serveFlags.configPath
		if path == "" {
			path = config.DefaultPath()
		}
		// Governance state (mode, kill switch) survives a reload;
		// only configuration is swapped.
		reloader, err := config.NewReloader(path, engine.ApplyConfig)
		if err != nil {
			return err
		}
		go reloader.Run(ctx)
	}

	fmt.Fprintf(os.Stderr, "%s %s serving on stdio (config %s)\n", govern.EngineName, govern.EngineVersion, hash)
	return server.Run(ctx)
}
