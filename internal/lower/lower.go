// Package lower implements the HIR→MIR lowering pass (spec §4.8): closure
// conversion, desugared if-type/try dispatch into tagged-variant Case
// analysis, record construction with explicit field indexing, and
// generation of the MIR wrapper TypeDefinitions realizing every
// polymorphic List/Map/Function type collected by internal/reflect (spec
// §4.7's last row, "Generic type collection & compilation"). It is
// grounded on original_source's lib/mir analysis passes: alias_removal.rs
// (the Let-to-substitution post-pass) and lambda_lifting/escape.rs (the
// free-variable environment computed for every closure).
package lower

import (
	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/mir"
	"github.com/sunholo/corehir/internal/reflect"
	"github.com/sunholo/corehir/internal/typeid"
)

// ctx threads the resolution environment, the type configuration, and the
// lexical variable-type map needed to compute closure environments through
// every lowering call. Extension copies rather than mutates, exactly as
// internal/infer's varEnv does, so sibling branches never observe each
// other's bindings.
type ctx struct {
	env   *hirtypes.Environment
	cfg   *config.TypeConfiguration
	types map[string]hirtypes.Type
	fresh *int
}

func (c ctx) with(name string, t hirtypes.Type) ctx {
	out := make(map[string]hirtypes.Type, len(c.types)+1)
	for k, v := range c.types {
		out[k] = v
	}
	out[name] = t
	c.types = out
	return c
}

func (c ctx) freshName(prefix string) string {
	*c.fresh++
	return prefix + itoa(*c.fresh)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// Module lowers a fully validated, inferred, coerced and desugared HIR
// module into MIR (spec §4.8). env must be the module's own type
// environment (hir.Module.BuildEnvironment); cfg is the type configuration
// desugaring already used, needed again here to name the wrapper records
// for collected generic container types.
func Module(m *hir.Module, env *hirtypes.Environment, cfg *config.TypeConfiguration) (*mir.Module, error) {
	n := 0
	c := ctx{env: env, cfg: cfg, fresh: &n}

	typeDefs, err := genericTypeDefinitions(m, env, cfg)
	if err != nil {
		return nil, err
	}

	declarations := make([]*mir.FunctionDeclaration, 0, len(m.FunctionDeclarations))
	for _, decl := range m.ForeignDeclarations {
		fd, err := lowerForeignDeclaration(decl, c)
		if err != nil {
			return nil, err
		}
		declarations = append(declarations, fd)
	}
	for _, decl := range m.FunctionDeclarations {
		fd, err := lowerFunctionDeclaration(decl, c)
		if err != nil {
			return nil, err
		}
		declarations = append(declarations, fd)
	}

	definitions := make([]*mir.FunctionDefinition, 0, len(m.FunctionDefinitions))
	for _, def := range m.FunctionDefinitions {
		fd, err := lowerTopLevelFunction(def.Name, def.Lambda, c)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, fd)
	}

	equalDefs, debugDefs, err := reflectDispatchTables(m, env, typeDefs)
	if err != nil {
		return nil, err
	}
	definitions = append(definitions, equalDefs...)
	definitions = append(definitions, debugDefs...)

	out := &mir.Module{
		TypeDefinitions:      typeDefs,
		FunctionDeclarations: declarations,
		FunctionDefinitions:  removeAliasesAll(definitions),
	}
	return out, nil
}

func lowerForeignDeclaration(d *hir.ForeignDeclaration, c ctx) (*mir.FunctionDeclaration, error) {
	ft, err := lowerFunctionType(d.Type, c)
	if err != nil {
		return nil, err
	}
	return &mir.FunctionDeclaration{Name: d.Name, Type: ft}, nil
}

func lowerFunctionDeclaration(d *hir.FunctionDeclaration, c ctx) (*mir.FunctionDeclaration, error) {
	ft, err := lowerFunctionType(d.Type, c)
	if err != nil {
		return nil, err
	}
	return &mir.FunctionDeclaration{Name: d.Name, Type: ft}, nil
}

func lowerFunctionType(t *hirtypes.Function, c ctx) (*mir.FunctionType, error) {
	if t == nil {
		return &mir.FunctionType{}, nil
	}
	args := make([]mir.Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = mir.AsType(a)
	}
	return &mir.FunctionType{Arguments: args, Result: mir.AsType(t.Result)}, nil
}

// genericTypeDefinitions realizes spec §4.7's final step: every distinct
// List/Map/Function type appearing in a variant position becomes a MIR
// record type definition, named by its deterministic type id, wrapping the
// runtime representation the type configuration names for its head
// (cfg.List.ListTypeName, cfg.Map.MapTypeName, or a bare closure
// representation for Function). Ordering follows insertion into the
// type-id-sorted set, satisfying spec §5's determinism requirement.
func genericTypeDefinitions(m *hir.Module, env *hirtypes.Environment, cfg *config.TypeConfiguration) ([]*mir.TypeDefinition, error) {
	types, err := reflect.GenericTypes(m, env)
	if err != nil {
		return nil, err
	}
	type entry struct {
		id  string
		def *mir.TypeDefinition
	}
	entries := make([]entry, 0, len(types))
	for _, t := range types {
		id, err := hirtypes.TypeID(t, env)
		if err != nil {
			return nil, err
		}
		var fields []mir.Type
		switch tt := t.(type) {
		case *hirtypes.List:
			if cfg == nil {
				return nil, errors.MissingConfiguration(tt.Pos)
			}
			fields = []mir.Type{&mir.NamedType{Name: cfg.List.ListTypeName}}
		case *hirtypes.Map:
			if cfg == nil {
				return nil, errors.MissingConfiguration(tt.Pos)
			}
			fields = []mir.Type{&mir.NamedType{Name: cfg.Map.MapTypeName}}
		case *hirtypes.Function:
			fields = []mir.Type{mir.AsType(tt)}
		}
		entries = append(entries, entry{id: id, def: &mir.TypeDefinition{Name: id, Fields: fields}})
	}
	typeid.SortByKey(entries, func(e entry) string { return e.id })
	out := make([]*mir.TypeDefinition, len(entries))
	for i, e := range entries {
		out[i] = e.def
	}
	return out, nil
}

func lowerTopLevelFunction(name string, l *hir.Lambda, c ctx) (*mir.FunctionDefinition, error) {
	lc := c
	for _, a := range l.Args {
		lc = lc.with(a.Name, a.Type)
	}
	body, err := lowerExpr(l.Body, lc)
	if err != nil {
		return nil, err
	}
	args := make([]mir.Argument, len(l.Args))
	for i, a := range l.Args {
		args[i] = mir.Argument{Name: a.Name, Type: mir.AsType(a.Type)}
	}
	return &mir.FunctionDefinition{
		Name:      name,
		Arguments: args,
		Result:    mir.AsType(l.Body.InferredType()),
		Body:      body,
	}, nil
}
