package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"simple-mcp/internal/mcpserver"
	"simple-mcp/internal/stdio"
)

var stdioRaw bool

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP over stdin/stdout",
	Long: `Serve the tools over stdin/stdout. By default the MCP SDK handles the
session; --raw switches to the plain line-delimited JSON-RPC loop.`,
	RunE: runStdio,
}

func init() {
	stdioCmd.Flags().BoolVar(&stdioRaw, "raw", false, "use the line-delimited JSON-RPC loop")
	rootCmd.AddCommand(stdioCmd)
}

func runStdio(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.log.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := a.log.Component("stdio")
	l.Info().Bool("raw", stdioRaw).Msg("Starting stdio server")

	if stdioRaw {
		return stdio.New(a.dispatcher, l).Serve(ctx, os.Stdin, os.Stdout)
	}
	return mcpserver.RunStdio(ctx, mcpserver.New(a.dispatcher))
}
