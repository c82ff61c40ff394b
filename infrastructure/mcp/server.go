// Package mcp exposes the registered tools to external agents over the
// Model Context Protocol. This is the repository's tool-call surface;
// the conversational front end consuming it lives elsewhere.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcpgo "github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/sqlgate/domain/tool"
	"github.com/felixgeelhaar/sqlgate/infrastructure/logging"
)

// ServerConfig configures the tool server.
type ServerConfig struct {
	// Name is the advertised server name.
	Name string

	// Version is the server version.
	Version string

	// Registry holds the tools to expose.
	Registry tool.Registry

	// Instructions provides usage guidance for clients.
	Instructions string
}

// Server wraps an MCP server around a tool registry.
type Server struct {
	srv      *mcpgo.Server
	registry tool.Registry
}

// NewServer creates an MCP server exposing every registered tool.
func NewServer(cfg ServerConfig) *Server {
	info := mcpgo.ServerInfo{
		Name:    cfg.Name,
		Version: cfg.Version,
		Capabilities: mcpgo.Capabilities{
			Tools: true,
		},
	}

	var opts []mcpgo.Option
	if cfg.Instructions != "" {
		opts = append(opts, mcpgo.WithInstructions(cfg.Instructions))
	}

	s := &Server{
		srv:      mcpgo.NewServer(info, opts...),
		registry: cfg.Registry,
	}

	if cfg.Registry != nil {
		for _, t := range cfg.Registry.List() {
			s.registerTool(t)
		}
	}

	return s
}

// registerTool bridges one tool into the MCP server. Tool-level
// failures have already been folded into the result payload by the
// gateway; only transport and invocation errors surface here.
func (s *Server) registerTool(t tool.Tool) {
	handler := func(ctx context.Context, input json.RawMessage) (string, error) {
		start := time.Now()
		result, err := t.Execute(ctx, input)
		if err != nil {
			logging.Warn().
				Add(logging.ToolName(t.Name())).
				Add(logging.ErrorField(err)).
				Msg("tool invocation failed")
			return "", err
		}

		logging.Debug().
			Add(logging.ToolName(t.Name())).
			Add(logging.Duration(time.Since(start))).
			Msg("tool invoked")
		return string(result.Output), nil
	}

	s.srv.Tool(t.Name()).
		Description(t.Description()).
		Handler(handler)
}

// AddTool registers an additional tool with the running server.
func (s *Server) AddTool(t tool.Tool) error {
	if s.registry != nil {
		if err := s.registry.Register(t); err != nil {
			return fmt.Errorf("register tool: %w", err)
		}
	}
	s.registerTool(t)
	return nil
}

// ServeStdio runs the server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcpgo.ServeStdio(ctx, s.srv)
}

// ServeHTTP runs the server over HTTP with SSE on addr.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcpgo.ServeHTTP(ctx, s.srv, addr)
}
