// Command temporal drives the date-time boundary from the shell: parse,
// compute and format values, list the binary interface, or explore it in
// an interactive playground.
package main

import (
	"fmt"
	"os"

	"github.com/wippyai/temporal-capi/capi"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if capi.CodeOf(err) != capi.Internal {
			fmt.Fprintf(os.Stderr, "Error: %s\n", capi.StatusOf(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
