package iface

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/sunholo/corehir/internal/typeid"
)

// Document is the normalized JSON/YAML shape for a module interface (spec
// §6.3: "stable, deterministic, position-free serialization"). Arrays are
// always sorted by name so two builds of the same module produce
// byte-identical output, matching the teacher's own InterfaceJSON
// normalization rules. YAML tags mirror the JSON ones so both encoders
// agree on field names — the teacher's own manifest loader (gopkg.in/
// yaml.v3) is reused here rather than hand-rolling a second encoder.
type Document struct {
	Module  string         `json:"module" yaml:"module"`
	Schema  string         `json:"schema" yaml:"schema"`
	Digest  string         `json:"digest" yaml:"digest"`
	Records []RecordDoc    `json:"records,omitempty" yaml:"records,omitempty"`
	Aliases []TypeAliasDoc `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Funcs   []FunctionDoc  `json:"funcs" yaml:"funcs"`
}

// RecordDoc is an exported record type definition in normalized form.
type RecordDoc struct {
	Name   string   `json:"name" yaml:"name"`
	Fields []string `json:"fields" yaml:"fields"`
}

// TypeAliasDoc is an exported type alias in normalized form.
type TypeAliasDoc struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// FunctionDoc is an exported function declaration in normalized form.
type FunctionDoc struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// ToDocument converts i to its normalized, sortable representation.
func (i *Iface) ToDocument() Document {
	doc := Document{Module: i.Module, Schema: i.Schema, Digest: i.Digest}

	recordNames := sortedKeys(i.Records)
	for _, name := range recordNames {
		rec := i.Records[name]
		fields := make([]string, len(rec.Fields))
		for idx, f := range rec.Fields {
			fields[idx] = f.Name + ":" + f.Type.String()
		}
		doc.Records = append(doc.Records, RecordDoc{Name: rec.Name, Fields: fields})
	}

	aliasNames := sortedKeys(i.TypeAliases)
	for _, name := range aliasNames {
		a := i.TypeAliases[name]
		doc.Aliases = append(doc.Aliases, TypeAliasDoc{Name: a.Name, Type: a.Type.String()})
	}

	funcNames := sortedKeys(i.Exports)
	doc.Funcs = make([]FunctionDoc, 0, len(funcNames))
	for _, name := range funcNames {
		e := i.Exports[name]
		doc.Funcs = append(doc.Funcs, FunctionDoc{Name: e.Name, Type: e.Type.String()})
	}
	return doc
}

// ToNormalizedJSON serializes i deterministically (spec §6.3).
func (i *Iface) ToNormalizedJSON() ([]byte, error) {
	return json.MarshalIndent(i.ToDocument(), "", "  ")
}

// ToNormalizedYAML serializes i deterministically in YAML form, for the
// same on-disk interface artifact as ToNormalizedJSON (spec §6.3 notes
// both encodings are supported; YAML mode matters for hand-editing a
// fixture during development the way the teacher's manifest files are
// hand-edited).
func (i *Iface) ToNormalizedYAML() ([]byte, error) {
	return yaml.Marshal(i.ToDocument())
}

func sortedKeys[V any](m map[string]V) []string {
	return typeid.Sorted(m)
}
