// Package config defines the Type Configuration that parameterizes
// desugaring and lowering (spec §6.4): the concrete runtime helper and
// wrapper-type names the back end supplies for lists, maps, strings,
// numbers and errors. None of these names are fixed by the core itself.
// Loading follows the teacher's manifest package: a YAML document read via
// gopkg.in/yaml.v3 into this struct tree.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ListConfiguration names the runtime helpers backing the list type.
type ListConfiguration struct {
	ListTypeName           string `yaml:"list_type_name"`
	EmptyFunctionName      string `yaml:"empty_function_name"`
	LazyFunctionName       string `yaml:"lazy_function_name"`
	PrependFunctionName    string `yaml:"prepend_function_name"`
	ConcatenateFunctionName string `yaml:"concatenate_function_name"`
	EqualFunctionName      string `yaml:"equal_function_name"`
	MaybeEqualFunctionName string `yaml:"maybe_equal_function_name"`
	DebugFunctionName      string `yaml:"debug_function_name"`
}

// HashConfiguration names the per-kind hash helpers and the combine
// function folded right-to-left across a record's fields (spec §6.4, §9
// note 2: a fixed 64-bit identity hash seeds each record's combine fold).
type HashConfiguration struct {
	NumberHashFunctionName  string `yaml:"number_hash_function_name"`
	StringHashFunctionName  string `yaml:"string_hash_function_name"`
	ListHashFunctionName    string `yaml:"list_hash_function_name"`
	MapHashFunctionName     string `yaml:"map_hash_function_name"`
	CombineFunctionName     string `yaml:"combine_function_name"`
}

// MapConfiguration extends ListConfiguration's shape with map-specific
// mutation helpers and its hash sub-configuration.
type MapConfiguration struct {
	MapTypeName             string `yaml:"map_type_name"`
	EmptyFunctionName       string `yaml:"empty_function_name"`
	LazyFunctionName        string `yaml:"lazy_function_name"`
	PrependFunctionName     string `yaml:"prepend_function_name"`
	ConcatenateFunctionName string `yaml:"concatenate_function_name"`
	EqualFunctionName       string `yaml:"equal_function_name"`
	MaybeEqualFunctionName  string `yaml:"maybe_equal_function_name"`
	DebugFunctionName       string `yaml:"debug_function_name"`
	SetFunctionName         string `yaml:"set_function_name"`
	DeleteFunctionName      string `yaml:"delete_function_name"`
	MergeFunctionName       string `yaml:"merge_function_name"`
	Hash                    HashConfiguration `yaml:"hash"`
}

// StringConfiguration names the string equality helper.
type StringConfiguration struct {
	EqualFunctionName string `yaml:"equal_function_name"`
}

// NumberConfiguration names the number debug helper.
type NumberConfiguration struct {
	DebugFunctionName string `yaml:"debug_function_name"`
}

// ErrorConfiguration names the built-in error record type.
type ErrorConfiguration struct {
	ErrorTypeName string `yaml:"error_type_name"`
}

// TypeConfiguration is the full parameter set threaded through desugaring
// and lowering (spec §6.4). A nil *TypeConfiguration models the "prelude"
// mode in which these helpers are themselves being defined: any desugaring
// rule that needs one reports MissingConfiguration instead.
type TypeConfiguration struct {
	List   ListConfiguration   `yaml:"list"`
	Map    MapConfiguration    `yaml:"map"`
	String StringConfiguration `yaml:"string"`
	Number NumberConfiguration `yaml:"number"`
	Error  ErrorConfiguration  `yaml:"error"`
}

// Load reads a TypeConfiguration from a YAML file at path.
func Load(path string) (*TypeConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg TypeConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Prelude returns nil, the sentinel for prelude-mode compilation (spec
// §6.4), spelled out as a named constructor so call sites read as intent
// rather than a bare nil.
func Prelude() *TypeConfiguration { return nil }
