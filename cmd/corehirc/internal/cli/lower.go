package cli

import (
	"github.com/spf13/cobra"

	"github.com/sunholo/corehir/internal/pipeline"
)

var lowerCmd = &cobra.Command{
	Use:   "lower <module.json>",
	Short: "Run the full pipeline and print the MIR module's function names.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModule(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		result, err := pipeline.Run(cmd.Context(), pipeline.Config{Mode: pipeline.ModeLower, Configuration: cfg}, pipeline.Source{Module: m})
		if err != nil {
			printError(cmd, err)
			return err
		}

		cmd.Println(green("ok") + ": lowered to MIR")
		for _, def := range result.MIR.FunctionDefinitions {
			cmd.Printf("  %s/%d\n", def.Name, len(def.Arguments))
		}
		for name, ms := range result.PhaseTimings {
			cmd.Printf("  %s: %s %dms\n", cyan("phase"), name, ms)
		}
		return nil
	},
}
