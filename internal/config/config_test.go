package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadRoundTrip(t *testing.T) {
	cfg := TypeConfiguration{
		List: ListConfiguration{ListTypeName: "GenericList", EmptyFunctionName: "list.empty"},
		Map: MapConfiguration{
			MapTypeName: "GenericMap",
			Hash:        HashConfiguration{CombineFunctionName: "hash.combine"},
		},
		String: StringConfiguration{EqualFunctionName: "string.equal"},
		Number: NumberConfiguration{DebugFunctionName: "number.debug"},
		Error:  ErrorConfiguration{ErrorTypeName: "core.Error"},
	}
	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "types.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, *loaded)
}

func TestPreludeIsNil(t *testing.T) {
	require.Nil(t, Prelude())
}
