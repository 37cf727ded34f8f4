package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/wire"
)

var idsCmd = &cobra.Command{
	Use:   "ids <types.json>",
	Short: "Print the deterministic type id (spec §3.5) for a JSON array of wire type nodes.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var nodes []wire.TypeNode
		if err := json.Unmarshal(raw, &nodes); err != nil {
			return err
		}
		env := hirtypes.NewEnvironment()
		for i := range nodes {
			t, err := wire.DecodeType(&nodes[i])
			if err != nil {
				printError(cmd, err)
				return err
			}
			id, err := hirtypes.TypeID(t, env)
			if err != nil {
				printError(cmd, err)
				return err
			}
			cmd.Printf("%s\t%s\n", id, t.String())
		}
		return nil
	},
}
