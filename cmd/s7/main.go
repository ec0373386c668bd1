// Command s7 syncs a source endpoint to a target endpoint, or requests
// archive-tier retrieval ahead of a sync, across local filesystem and
// object-store backends with an optional transparent encryption layer.
package main

import (
	"os"

	"github.com/chadvoegele/s7/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
