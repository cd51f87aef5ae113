package commands

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var (
		transport   string
		httpHost    string
		httpPort    int
		httpPath    string
		httpTLSCert string
		httpTLSKey  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the calendar, the agenda, event creation
and AI goal progression through the Model Context Protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				path := strings.TrimSpace(httpPath)
				if path == "" {
					path = "/mcp"
				}
				if !strings.HasPrefix(path, "/") {
					path = "/" + path
				}

				runner := mcp.Runner{
					App:              e.app,
					Name:             "pilot",
					Version:          version,
					HTTPEndpointPath: path,
					HTTPServerCert:   strings.TrimSpace(httpTLSCert),
					HTTPServerKey:    strings.TrimSpace(httpTLSKey),
				}

				switch strings.ToLower(strings.TrimSpace(transport)) {
				case "", string(mcp.TransportHTTP):
					host := strings.TrimSpace(httpHost)
					if host == "" {
						host = "127.0.0.1"
					}
					if httpPort < 0 || httpPort > 65535 {
						return fmt.Errorf("invalid http-port %d", httpPort)
					}
					runner.Transport = mcp.TransportHTTP
					runner.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(httpPort))
					runner.OnHTTPListening = func(a net.Addr) {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", listenURL(a, host, path, runner.HTTPServerCert != "" && runner.HTTPServerKey != ""))
					}
				case string(mcp.TransportStdio):
					runner.Transport = mcp.TransportStdio
				default:
					return fmt.Errorf("unsupported transport %q (expected http or stdio)", transport)
				}

				return runner.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8090, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

// listenURL prints the address a client should use. Unspecified hosts show
// the bound IP, or loopback.
func listenURL(a net.Addr, host, path string, tls bool) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	tcpAddr, ok := a.(*net.TCPAddr)
	if !ok {
		return fmt.Sprintf("%s://%s%s", scheme, a.String(), path)
	}
	display := host
	if display == "" || display == "0.0.0.0" || display == "::" {
		if tcpAddr.IP != nil && !tcpAddr.IP.IsUnspecified() {
			display = tcpAddr.IP.String()
		} else {
			display = "127.0.0.1"
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(display, strconv.Itoa(tcpAddr.Port)), path)
}
