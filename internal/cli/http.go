package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"simple-mcp/internal/mcpserver"
	"simple-mcp/internal/server"
)

var httpPort int

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve REST, SSE, WebSocket and MCP streamable HTTP",
	Long: `Start the HTTP server. REST endpoints live under /tools, JSON-RPC under
/sse and /ws, MCP streamable HTTP under /mcp and Prometheus metrics under
/metrics.`,
	RunE: runHTTP,
}

func init() {
	httpCmd.Flags().IntVar(&httpPort, "port", 8000, "listen port (overrides config and PORT)")
	rootCmd.AddCommand(httpCmd)
}

func runHTTP(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.log.Close()

	if cmd.Flags().Changed("port") {
		a.cfg.Port = httpPort
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:           a.cfg.Addr(),
		RequestTimeout: a.cfg.RequestTimeout,
		Logger:         a.log.Component("http"),
		Metrics:        a.metrics,
		MCP:            mcpserver.StreamableHandler(mcpserver.New(a.dispatcher)),
	}, a.dispatcher)

	return srv.ListenAndServe(ctx)
}
