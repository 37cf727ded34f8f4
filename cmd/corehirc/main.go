// Command corehirc is the reference driver for the corehir compiler core:
// it reads a module in the wire JSON format (internal/wire), runs it
// through the pipeline (internal/pipeline), and prints the requested
// artifact. Grounded on the teacher's cmd/ailang/main.go for the color
// conventions, adapted to cobra's command tree (spec §1 leaves CLI shape
// unspecified; cobra is the pack's own convention for a multi-command
// compiler front end, e.g. go-corset's pkg/cmd).
package main

import (
	"fmt"
	"os"

	"github.com/sunholo/corehir/cmd/corehirc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
