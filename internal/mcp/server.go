package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/nmdc-mcp/internal/logging"
	"github.com/roivaz/nmdc-mcp/internal/mcp/tools"
)

const Version = "1.0.0"

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler

	transport string
	httpAddr  string
	log       logging.Logger
}

func New(cfg Config) *Server {
	log := cfg.Logger
	if log.Logr().GetSink() == nil {
		log = logging.Discard()
	}
	if cfg.Name == "" {
		cfg.Name = "nmdc"
	}
	if cfg.Version == "" {
		cfg.Version = Version
	}

	mcpServer := server.NewMCPServer(
		cfg.Name,
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, ep := range Catalog() {
		name := ep.Tool.Name
		if !ep.Active {
			log.Debug("endpoint inactive, not registering", "tool", name)
			continue
		}
		adapter, ok := cfg.ToolAdapters[name]
		if !ok {
			log.Info("no adapter configured, not registering", "tool", name)
			continue
		}
		mcpServer.AddTool(ep.Tool, tools.Instrument(name, adapter.ToolAdapter, log))
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	transport := cfg.Transport
	if transport == "" {
		transport = TransportStdio
	}
	return &Server{
		MCP:       mcpServer,
		HTTP:      httpServer,
		Handler:   httpServer,
		transport: transport,
		httpAddr:  cfg.HTTPAddr,
		log:       log.WithName("server"),
	}
}

// Serve blocks until ctx is cancelled or the transport stops. On stdio, EOF
// from the host ends the session cleanly.
func (s *Server) Serve(ctx context.Context) error {
	switch s.transport {
	case TransportStdio:
		return s.serveStdio(ctx)
	case TransportHTTP:
		return s.serveHTTP(ctx)
	default:
		return fmt.Errorf("unsupported transport %q (want %s or %s)", s.transport, TransportStdio, TransportHTTP)
	}
}

func (s *Server) serveStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.MCP)
	stdio.SetErrorLogger(logging.StdLog(s.log.WithName("stdio")))

	s.log.Info("MCP server listening on stdio")
	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) serveHTTP(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.httpAddr,
		Handler: s.Handler,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("MCP server listening", "addr", s.httpAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
