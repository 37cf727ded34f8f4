package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/iface"
	"github.com/sunholo/corehir/internal/pipeline"
	"github.com/sunholo/corehir/internal/wire"
)

var typecheckCmd = &cobra.Command{
	Use:   "typecheck <module.json>",
	Short: "Validate, infer, and coerce a module, printing its interface.",
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

		result, err := pipeline.Run(cmd.Context(), pipeline.Config{Mode: pipeline.ModeCheck, Configuration: cfg}, pipeline.Source{Module: m})
		if err != nil {
			printError(cmd, err)
			return err
		}

		i := iface.Build(moduleName(args[0]), result.Artifacts.Coerced, result.Environment)
		doc, err := i.ToNormalizedJSON()
		if err != nil {
			return err
		}
		cmd.Println(green("ok") + ": module type-checks")
		cmd.Println(string(doc))
		return nil
	},
}

func loadModule(path string) (*hir.Module, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return wire.DecodeModule(raw)
}

func loadConfig(cmd *cobra.Command) (*config.TypeConfiguration, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Prelude(), nil
	}
	return config.Load(path)
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
