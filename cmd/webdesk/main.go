// webdesk serves a browser desktop whose window layout lives in the page
// URL. It also decodes and encodes that layout from the command line.
package main

import (
	"os"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
