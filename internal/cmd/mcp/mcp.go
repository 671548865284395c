// Package mcp parses MCP command flags and serves the tools over stdio.
package mcp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	platformcmd "github.com/louisbranch/advancement/internal/platform/cmd"
	storagesqlite "github.com/louisbranch/advancement/internal/services/game/storage/sqlite"
	mcpservice "github.com/louisbranch/advancement/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath string `env:"DB_PATH" envDefault:"data/advancement.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "database holding the domain card catalog")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter on stdio.
func Run(ctx context.Context, cfg Config) error {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("db path is required")
	}
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		server, err := newServer(cfg)
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	})
}

func newServer(cfg Config) (*mcpservice.Server, error) {
	store, err := storagesqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open card store: %w", err)
	}
	server, err := mcpservice.New(store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return server, nil
}
