// Package cli wires corehirc's subcommands, grounded on go-corset's
// pkg/cmd/root.go (the pack's real cobra usage) rather than the teacher's
// own stdlib-flag CLI, since cobra is the dependency SPEC_FULL.md commits
// this module to for its command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	colorOutput = isatty.IsTerminal(os.Stdout.Fd())

	red    = colorFunc(color.FgRed)
	green  = colorFunc(color.FgGreen)
	yellow = colorFunc(color.FgYellow)
	cyan   = colorFunc(color.FgCyan)
)

// colorFunc returns a formatter that only applies color when stdout is a
// terminal (spec has no opinion on CLI UX; piping corehirc's output into
// another tool should never embed ANSI escapes).
func colorFunc(attr color.Attribute) func(string) string {
	c := color.New(attr)
	return func(s string) string {
		if !colorOutput {
			return s
		}
		return c.Sprint(s)
	}
}

var rootCmd = &cobra.Command{
	Use:   "corehirc",
	Short: "HIR/MIR compiler core for a statically-typed pure-functional language.",
	Long:  "corehirc type-checks and lowers HIR modules (spec'd as a standalone compiler core) to MIR.",
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a type-configuration YAML file (spec §6.4)")
	rootCmd.AddCommand(typecheckCmd)
	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(idsCmd)
	rootCmd.AddCommand(typesReplCmd)
}

// Execute runs the corehirc command tree.
func Execute() error {
	return rootCmd.Execute()
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", red("error:"), err)
}
