package commands

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport string
		httpHost  string
		httpPort  int
		httpPath  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lets agents read the task list, create tasks,
publish notifications on the command bus and drive the focus timer.`,
		Example: `
cmdcenter mcp
cmdcenter mcp --transport stdio
cmdcenter mcp --http-port 0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			if httpPort < 0 || httpPort > 65535 {
				return fmt.Errorf("invalid http-port %d", httpPort)
			}
			host := strings.TrimSpace(httpHost)
			if host == "" {
				host = "127.0.0.1"
			}
			path := mcp.Endpoint(httpPath)

			l, err := openEngine()
			if err != nil {
				return err
			}
			defer l.Close()

			runner := mcp.Runner{
				Engine:     l.Engine,
				Version:    version,
				Transport:  t,
				ListenAddr: net.JoinHostPort(host, strconv.Itoa(httpPort)),
				Endpoint:   path,
				OnListening: func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP HTTP server listening on %s\n", listenURL(host, a, path))
				},
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runner.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", mcp.DefaultEndpoint, "HTTP endpoint path")

	topLevel.AddCommand(cmd)
}

// listenURL is the address an agent should be pointed at. A wildcard host
// is shown as the bound IP, or loopback when that is unspecified too.
func listenURL(host string, a net.Addr, path string) string {
	tcpAddr, ok := a.(*net.TCPAddr)
	if !ok {
		return a.String() + path
	}
	if host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
		if tcpAddr.IP != nil && !tcpAddr.IP.IsUnspecified() {
			host = tcpAddr.IP.String()
		}
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(tcpAddr.Port)) + path
}
