// Package validate implements the HIR validators of spec §4.2: duplicate
// names, type existence, record-field privacy/shape, and try-operation
// placement. Each validator takes (context, module) and returns the first
// offense as a *errors.Diagnostic, mirroring the teacher's one-validator-
// per-file layout and original_source's *_validator.rs modules.
package validate

import (
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// DuplicateNames rejects two declarations or definitions sharing a name
// within a module (spec §4.2). The check uses two namespaces rather than
// one global one: record type definitions and type aliases share the type
// namespace; foreign declarations, function declarations and function
// definitions share the function namespace.
func DuplicateNames(m *hir.Module) error {
	if err := checkUnique(typeNames(m)); err != nil {
		return err
	}
	if err := checkUnique(functionNames(m)); err != nil {
		return err
	}
	return nil
}

func typeNames(m *hir.Module) []named {
	var out []named
	for _, d := range m.TypeDefinitions {
		out = append(out, named{Name: d.Name, Pos: d.Pos})
	}
	for _, a := range m.TypeAliases {
		out = append(out, named{Name: a.Name, Pos: a.Pos})
	}
	return out
}

func functionNames(m *hir.Module) []named {
	var out []named
	for _, d := range m.ForeignDeclarations {
		out = append(out, named{Name: d.Name, Pos: d.Pos})
	}
	for _, d := range m.FunctionDeclarations {
		out = append(out, named{Name: d.Name, Pos: d.Pos})
	}
	for _, d := range m.FunctionDefinitions {
		out = append(out, named{Name: d.Name, Pos: d.Pos})
	}
	return out
}

type named struct {
	Name string
	Pos  hirtypes.Position
}

func checkUnique(items []named) error {
	seen := make(map[string]hirtypes.Position)
	for _, it := range items {
		if _, ok := seen[it.Name]; ok {
			return errors.DuplicateName(it.Name, it.Pos)
		}
		seen[it.Name] = it.Pos
	}
	return nil
}
