// Package iface builds the interface-module artifact described in spec
// §6.3: a small per-module summary of publicly exported type definitions,
// type aliases, and function declarations with their canonical types, in a
// stable position-free serialization downstream modules can consume without
// re-parsing source. It is grounded on the teacher's own internal/iface
// package (Iface/IfaceItem/NewIface/AddExport), adapted from the teacher's
// type-class Scheme to hirtypes.Type.
package iface

import "github.com/sunholo/corehir/internal/hirtypes"

// Iface is a module's public interface.
type Iface struct {
	Module       string
	Exports      map[string]*FunctionExport
	TypeAliases  map[string]*TypeAliasExport
	Records      map[string]*RecordExport
	Schema       string
	Digest       string
}

// FunctionExport is a single exported function declaration.
type FunctionExport struct {
	Name string
	Type *hirtypes.Function
}

// TypeAliasExport is a single exported type alias.
type TypeAliasExport struct {
	Name string
	Type hirtypes.Type
}

// RecordExport is a single exported record type definition.
type RecordExport struct {
	Name   string
	Fields []hirtypes.Field
}

// Schema is the current interface artifact version.
const Schema = "corehir.iface/v1"

// New creates an empty module interface.
func New(module string) *Iface {
	return &Iface{
		Module:      module,
		Exports:     make(map[string]*FunctionExport),
		TypeAliases: make(map[string]*TypeAliasExport),
		Records:     make(map[string]*RecordExport),
		Schema:      Schema,
	}
}

// AddExport registers an exported function declaration.
func (i *Iface) AddExport(name string, t *hirtypes.Function) {
	i.Exports[name] = &FunctionExport{Name: name, Type: t}
}

// AddTypeAlias registers an exported type alias.
func (i *Iface) AddTypeAlias(name string, t hirtypes.Type) {
	i.TypeAliases[name] = &TypeAliasExport{Name: name, Type: t}
}

// AddRecord registers an exported record type definition.
func (i *Iface) AddRecord(name string, fields []hirtypes.Field) {
	i.Records[name] = &RecordExport{Name: name, Fields: fields}
}

// GetExport retrieves an exported function declaration by name.
func (i *Iface) GetExport(name string) (*FunctionExport, bool) {
	e, ok := i.Exports[name]
	return e, ok
}
