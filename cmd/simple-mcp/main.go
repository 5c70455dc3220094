// Command simple-mcp serves the utility tools over HTTP or stdio.
package main

import (
	"os"

	"simple-mcp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
