package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/advancement/internal/services/mcp/domain"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "advancement"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

const (
	mcpDiceToolsModuleName    = "dice-tools"
	mcpStatsToolsModuleName   = "stats-tools"
	mcpLevelUpToolsModuleName = "levelup-tools"
	mcpCardToolsModuleName    = "card-tools"
)

type mcpRegistrationModule struct {
	name     string
	register func(*mcp.Server)
}

func newMCPRegistrationModules(source domain.CardSource) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpDiceToolsModuleName,
			register: func(server *mcp.Server) {
				mcp.AddTool(server, domain.ParseDiceTool(), domain.ParseDiceHandler())
				mcp.AddTool(server, domain.WeaponDamageTool(), domain.WeaponDamageHandler())
			},
		},
		{
			name: mcpStatsToolsModuleName,
			register: func(server *mcp.Server) {
				mcp.AddTool(server, domain.DeriveStatsTool(), domain.DeriveStatsHandler())
			},
		},
		{
			name: mcpLevelUpToolsModuleName,
			register: func(server *mcp.Server) {
				mcp.AddTool(server, domain.ValidateLevelUpTool(), domain.ValidateLevelUpHandler(source))
			},
		},
		{
			name: mcpCardToolsModuleName,
			register: func(server *mcp.Server) {
				mcp.AddTool(server, domain.QueryCardsTool(), domain.QueryCardsHandler(source))
			},
		},
	}
}

// CardStore is a card catalog the server owns and closes on exit.
type CardStore interface {
	domain.CardSource
	io.Closer
}

// Server hosts the advancement MCP tools.
type Server struct {
	mcpServer *mcp.Server
	store     CardStore
}

// New registers every tool against store. The server closes store when it
// stops serving.
func New(store CardStore) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("card store is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	for _, module := range newMCPRegistrationModules(store) {
		module.register(mcpServer)
	}
	return &Server{mcpServer: mcpServer, store: store}, nil
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the card store held by the server.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return err
	}
	s.store = nil
	return nil
}

// serveWithTransport runs the server on transport and closes the store on
// every exit path.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close card store: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close card store: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
