package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"simple-mcp/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool descriptors as JSON",
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	reg, err := tools.Default(nil)
	if err != nil {
		return fmt.Errorf("failed to build tool registry: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"tools": reg.List()})
}
