// exavatar serves avatar images over HTTP. An avatar is either a
// pre-rendered image of a collection, loaded from an asset store (local
// directory, HTTP server, S3 bucket or Swift container), or a small SVG
// generated from a short text on a colored background.
package main

import (
	"fmt"
	"os"

	"github.com/cozy/exavatar/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		if err != cmd.ErrUsage {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error()) // #nosec
			os.Exit(1)
		}
	}
}
