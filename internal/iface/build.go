package iface

import (
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// Build extracts the interface artifact from a compiled module: every
// public FunctionDeclaration/FunctionDefinition contributes a FunctionExport
// (declarations take priority since they carry the authoritative signature),
// every public TypeAlias an alias export, and every Declared RecordDefinition
// marked Public a record export.
func Build(module string, m *hir.Module, env *hirtypes.Environment) *Iface {
	i := New(module)

	declared := make(map[string]bool, len(m.FunctionDeclarations))
	for _, d := range m.FunctionDeclarations {
		declared[d.Name] = true
		if d.Public {
			i.AddExport(d.Name, d.Type)
		}
	}
	for _, d := range m.FunctionDefinitions {
		if !d.Public || declared[d.Name] {
			continue
		}
		i.AddExport(d.Name, lambdaType(d.Lambda))
	}
	for _, a := range m.TypeAliases {
		if a.Public {
			i.AddTypeAlias(a.Name, a.Type)
		}
	}
	for _, name := range env.RecordNames() {
		def, ok := env.Record(name)
		if !ok || !def.Public || !def.Declared {
			continue
		}
		i.AddRecord(def.Name, def.Fields)
	}
	i.Digest = Digest(i)
	return i
}

func lambdaType(l *hir.Lambda) *hirtypes.Function {
	args := make([]hirtypes.Type, len(l.Args))
	for idx, a := range l.Args {
		args[idx] = a.Type
	}
	return &hirtypes.Function{Pos: l.Pos, Args: args, Result: l.ResultType}
}
