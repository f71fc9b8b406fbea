package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/cmdcenter/pkg/engine"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdin and stdout.
	TransportStdio Transport = "stdio"
)

const (
	DefaultListenAddr = "127.0.0.1:8080"
	DefaultEndpoint   = "/mcp"

	shutdownGrace = 5 * time.Second
)

// ParseTransport accepts the --transport flag value. Empty means http.
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TransportHTTP, nil
	case TransportHTTP, TransportStdio:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected http or stdio)", s)
	}
}

// Endpoint normalises an HTTP endpoint path, defaulting to /mcp.
func Endpoint(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultEndpoint
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Runner serves the engine to MCP clients. While it serves, it also drives
// the engine clock so focus sessions started by an agent keep counting.
type Runner struct {
	Engine  *engine.Engine
	Version string

	Transport  Transport
	ListenAddr string
	Endpoint   string

	// OnListening is called once the HTTP listener is bound.
	OnListening func(net.Addr)

	Stdin  io.Reader
	Stdout io.Writer
}

// NewServer builds the MCP server with every tool and resource over svc.
func NewServer(svc *Service, version string) *server.MCPServer {
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		"cmdcenter MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and change the command center task list, raise notifications and drive the focus timer. Use request_task and notify to act as a command bus collaborator."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Do serves until ctx is done or the transport fails.
func (r Runner) Do(ctx context.Context) error {
	if r.Engine == nil {
		return errors.New("mcp runner requires an engine")
	}
	transport, err := ParseTransport(string(r.Transport))
	if err != nil {
		return err
	}
	srv := NewServer(NewService(r.Engine), r.Version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	clock := make(chan error, 1)
	go func() { clock <- r.Engine.Run(ctx) }()

	if transport == TransportStdio {
		err = r.serveStdio(ctx, srv)
	} else {
		err = r.serveHTTP(ctx, srv)
	}
	cancel()
	return errors.Join(err, <-clock)
}

func (r Runner) serveStdio(ctx context.Context, srv *server.MCPServer) error {
	in, out := r.Stdin, r.Stdout
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	err := server.NewStdioServer(srv).Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	addr := r.ListenAddr
	if addr == "" {
		addr = DefaultListenAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if r.OnListening != nil {
		r.OnListening(ln.Addr())
	}

	mux := http.NewServeMux()
	mux.Handle(Endpoint(r.Endpoint), server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
