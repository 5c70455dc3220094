package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"simple-mcp/internal/client"
)

var checkURL string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Smoke-test a running HTTP server",
	Long:  `Run every REST endpoint of a running server and report the results.`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkURL, "url", "http://localhost:8000", "base URL of the server")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing MCP Server at: %s\n", checkURL)

	passed, failed := runChecks(cmd.Context(), client.New(checkURL, nil), out)

	fmt.Fprintf(out, "\nPassed: %d\nFailed: %d\nTotal:  %d\n", passed, failed, passed+failed)
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

type check struct {
	name string
	run  func(ctx context.Context, c *client.Client) (string, error)
}

var checks = []check{
	{"GET / (server info)", func(ctx context.Context, c *client.Client) (string, error) {
		info, err := c.Info(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Server: %s v%s", info.Name, info.Version), nil
	}},
	{"GET /health", func(ctx context.Context, c *client.Client) (string, error) {
		h, err := c.Health(ctx)
		if err != nil {
			return "", err
		}
		return "Health: " + h.Status, nil
	}},
	{"GET /tools", func(ctx context.Context, c *client.Client) (string, error) {
		ts, err := c.Tools(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Available tools: %d", len(ts)), nil
	}},
	{"POST /tools/echo", func(ctx context.Context, c *client.Client) (string, error) {
		res, err := c.Echo(ctx, "Hello, MCP!")
		if err != nil {
			return "", err
		}
		return "Result: " + res, nil
	}},
	{"GET /tools/time", func(ctx context.Context, c *client.Client) (string, error) {
		res, err := c.Time(ctx)
		if err != nil {
			return "", err
		}
		return "Time: " + res.Result, nil
	}},
	{"POST /tools/calculate (addition)", func(ctx context.Context, c *client.Client) (string, error) {
		res, err := c.Calculate(ctx, "add", 10, 5)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Result: %g + %g = %g", res.A, res.B, res.Result), nil
	}},
	{"POST /tools/calculate (multiplication)", func(ctx context.Context, c *client.Client) (string, error) {
		res, err := c.Calculate(ctx, "multiply", 7, 6)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Result: %g x %g = %g", res.A, res.B, res.Result), nil
	}},
	{"POST /tools/reverse", func(ctx context.Context, c *client.Client) (string, error) {
		res, err := c.Reverse(ctx, "MCP Server")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Original: %s, Reversed: %s", res.Original, res.Result), nil
	}},
	{"error handling (division by zero)", func(ctx context.Context, c *client.Client) (string, error) {
		_, err := c.Calculate(ctx, "divide", 10, 0)
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
			return "", fmt.Errorf("expected status 400, got %v", err)
		}
		return "Error: " + apiErr.Message, nil
	}},
}

// runChecks executes every check against c, printing one line per check.
func runChecks(ctx context.Context, c *client.Client, out io.Writer) (passed, failed int) {
	for i, ch := range checks {
		detail, err := ch.run(ctx, c)
		if err != nil {
			fmt.Fprintf(out, "%d. FAIL %s: %v\n", i+1, ch.name, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%d. PASS %s: %s\n", i+1, ch.name, detail)
		passed++
	}
	return passed, failed
}
