package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/wire"
)

var typesReplCmd = &cobra.Command{
	Use:   "types-repl",
	Short: "Interactively canonicalize wire-format type expressions and print their id and comparability.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runTypesREPL(cmd.OutOrStdout())
		return nil
	},
}

// runTypesREPL reads one JSON-encoded wire.TypeNode per line and prints its
// canonical form, deterministic type id (spec §3.5), and comparability
// (spec §3.4). It is a scoped-down successor to the teacher's own
// interactive REPL: full expression evaluation is out of scope for this
// core (spec §1), but exercising the type algebra interactively is useful
// for exploring a type configuration.
func runTypesREPL(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".corehirc_types_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintln(out, cyan("corehirc types-repl")+" — paste a wire type-node JSON expression, :quit to exit")

	env := hirtypes.NewEnvironment()
	for {
		input, err := line.Prompt("type> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("goodbye"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", red("error:"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == ":quit" || input == ":q" {
			break
		}
		evalTypeLine(out, env, input)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func evalTypeLine(out io.Writer, env *hirtypes.Environment, input string) {
	var n wire.TypeNode
	if err := json.Unmarshal([]byte(input), &n); err != nil {
		fmt.Fprintf(out, "%s %v\n", red("parse error:"), err)
		return
	}
	t, err := wire.DecodeType(&n)
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", red("error:"), err)
		return
	}
	canon, err := hirtypes.Canonicalize(t, env)
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", red("error:"), err)
		return
	}
	id, err := hirtypes.TypeID(canon, env)
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", red("error:"), err)
		return
	}
	comparable, err := hirtypes.Comparable(canon, env)
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", red("error:"), err)
		return
	}
	fmt.Fprintf(out, "%s: %s  %s: %s  %s: %v\n", yellow("type"), canon.String(), yellow("id"), id, yellow("comparable"), comparable)
}
