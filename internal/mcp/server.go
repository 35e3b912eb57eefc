package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gubarz/adfmd/internal/converter"
	"github.com/gubarz/adfmd/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for adfmd.
type Server struct {
	conv   *converter.Converter
	indent string
	server *mcp.Server
}

// NewServer creates a new MCP server around conv. indent controls the
// formatting of ADF JSON returned by tools.
func NewServer(conv *converter.Converter, indent string) (*Server, error) {
	if conv == nil {
		return nil, ErrMissingConverter
	}

	impl := &mcp.Implementation{
		Name:    "adfmd",
		Version: Version,
	}

	s := &Server{
		conv:   conv,
		indent: indent,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("mcp: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
