// Command cfpl is the CFPL interpreter's command-line entry point.
package main

import (
	"os"

	"github.com/cwbudde/cfpl/cmd/cfpl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
