// Sage is a query routing and retrieval CLI.
package main

import (
	"github.com/sage-labs/sage-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
