// Package mcp serves the tools over the Model Context Protocol,
// with stdio or streamable HTTP transport.
package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/yelpmcp/config"
	"github.com/effective-security/yelpmcp/tools"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/yelpmcp", "mcp")

// DefaultVersion is reported when the server version is not configured
const DefaultVersion = "v0.1.0"

const shutdownTimeout = 5 * time.Second

// Server is the MCP server with the registered tools
type Server struct {
	cfg    config.ServerConfig
	server *sdk.Server
	tools  []tools.IMCPTool
}

// New returns the MCP server with the tools registered
func New(cfg *config.Config, list ...tools.IMCPTool) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("configuration is not provided")
	}

	sc := cfg.Server
	if sc.Name == "" {
		sc.Name = config.DefaultServerName
	}
	if sc.Version == "" {
		sc.Version = DefaultVersion
	}
	if sc.Transport == "" {
		sc.Transport = config.DefaultTransport
	}
	if sc.Addr == "" {
		sc.Addr = config.DefaultAddr
	}
	if sc.Endpoint == "" {
		sc.Endpoint = config.DefaultEndpoint
	}

	server := sdk.NewServer(&sdk.Implementation{
		Name:    sc.Name,
		Version: sc.Version,
	}, nil)

	for _, tool := range list {
		if err := tool.RegisterMCP(server); err != nil {
			return nil, errors.WithMessagef(err, "failed to register tool: %s", tool.Name())
		}
		logger.KV(xlog.DEBUG, "tool", tool.Name(), "status", "registered")
	}

	return &Server{
		cfg:    sc,
		server: server,
		tools:  list,
	}, nil
}

// MCP returns the underlying MCP server
func (s *Server) MCP() *sdk.Server {
	return s.server
}

// Tools returns the registered tools
func (s *Server) Tools() []tools.IMCPTool {
	return s.tools
}

// Handler returns the streamable HTTP handler mounted at the configured endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.Endpoint, sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return s.server
	}, nil))
	return mux
}

// Serve runs the configured transport until the context is cancelled
// or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	logger.KV(xlog.NOTICE,
		"server", s.cfg.Name,
		"version", s.cfg.Version,
		"transport", s.cfg.Transport,
		"tools", len(s.tools),
	)

	switch s.cfg.Transport {
	case config.TransportStdio:
		return s.serveStdio(ctx)
	case config.TransportHTTP:
		return s.serveHTTP(ctx)
	}
	return errors.Errorf("unsupported transport: %s", s.cfg.Transport)
}

func (s *Server) serveStdio(ctx context.Context) error {
	err := s.server.Run(ctx, &sdk.StdioTransport{})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return errors.WithStack(err)
}

func (s *Server) serveHTTP(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.KV(xlog.NOTICE,
		"addr", s.cfg.Addr,
		"endpoint", s.cfg.Endpoint,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.KV(xlog.ERROR, "reason", "shutdown", "err", err.Error())
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "failed to listen on %s", s.cfg.Addr)
	}
}
