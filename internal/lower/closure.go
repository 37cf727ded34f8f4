package lower

import (
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/mir"
	"github.com/sunholo/corehir/internal/reflect"
)

// lowerClosureValue closure-converts a lambda appearing in expression
// position (spec §4.8: "every function becomes a closure with an explicit
// environment; lambdas close over the free variables of their body").
// Because MIR's expression grammar has no standalone closure-literal node,
// the closure is bound via LetRecursive immediately around a reference to
// its own name — the shape original_source's lambda-lifting pass produces
// before a separate hoisting pass pulls the definition to the top level.
func lowerClosureValue(l *hir.Lambda, c ctx) (mir.Expression, error) {
	name := c.freshName("$lambda")
	def, err := lowerClosureDefinition(name, l, c, false)
	if err != nil {
		return nil, err
	}
	return &mir.LetRecursive{Base: base(l), Definition: def, Body: &mir.Variable{Base: base(l), Name: name}}, nil
}

// lowerThunkValue closure-converts a Thunk into a zero-argument closure
// flagged IsThunk (spec §4.8: "Thunk becomes a zero-argument closure
// flagged for lazy evaluation; the back end is responsible for
// memoization").
func lowerThunkValue(t *hir.Thunk, c ctx) (mir.Expression, error) {
	name := c.freshName("$thunk")
	body, err := lowerExpr(t.Expr, c)
	if err != nil {
		return nil, err
	}
	free := freeVarsOf(body, nil, c)
	def := &mir.FunctionDefinition{
		Name:        name,
		Environment: free,
		Result:      mir.AsType(t.BodyType),
		Body:        body,
		IsThunk:     true,
	}
	return &mir.LetRecursive{Base: base(t), Definition: def, Body: &mir.Variable{Base: base(t), Name: name}}, nil
}

func lowerClosureDefinition(name string, l *hir.Lambda, c ctx, topLevel bool) (*mir.FunctionDefinition, error) {
	bodyCtx := c
	argNames := make(map[string]bool, len(l.Args))
	for _, a := range l.Args {
		bodyCtx = bodyCtx.with(a.Name, a.Type)
		argNames[a.Name] = true
	}
	body, err := lowerExpr(l.Body, bodyCtx)
	if err != nil {
		return nil, err
	}
	args := make([]mir.Argument, len(l.Args))
	for i, a := range l.Args {
		args[i] = mir.Argument{Name: a.Name, Type: mir.AsType(a.Type)}
	}
	var env []mir.Argument
	if !topLevel {
		env = freeVarsOf(body, argNames, c)
	}
	return &mir.FunctionDefinition{
		Name:        name,
		Environment: env,
		Arguments:   args,
		Result:      mir.AsType(l.Body.InferredType()),
		Body:        body,
	}, nil
}

// freeVarsOf computes the closure environment for a lowered body: its free
// variables (spec §4.8), excluding the lambda's own arguments, resolved
// against the lexical type map collected while lowering so each capture
// carries its declared type (mir.Argument requires one).
func freeVarsOf(body mir.Expression, exclude map[string]bool, c ctx) []mir.Argument {
	free := mir.FreeVariables(body)
	names := mir.SortedNames(free)
	out := make([]mir.Argument, 0, len(names))
	for _, n := range names {
		if exclude[n] {
			continue
		}
		t, ok := c.types[n]
		if !ok {
			// Globally-bound name (a top-level function or a runtime
			// helper) rather than a lexical capture; nothing to carry
			// in the environment.
			continue
		}
		out = append(out, mir.Argument{Name: n, Type: mir.AsType(t)})
	}
	return out
}

// reflectDispatchTables emits the debug/equal dispatch functions spec §4.8
// calls "Reflection" for record types: one MIR function of each kind per
// open, comparable record type definition of the module, named by
// internal/reflect from the record's type id. Each body is a direct call
// to the record's `<name>.$equal` or `<name>.$debug` helper. No entries are
// emitted for List/Map/Function types, and no default catch-all function
// is emitted.
func reflectDispatchTables(m *hir.Module, env *hirtypes.Environment, _ []*mir.TypeDefinition) ([]*mir.FunctionDefinition, []*mir.FunctionDefinition, error) {
	var equalDefs, debugDefs []*mir.FunctionDefinition
	for _, def := range m.TypeDefinitions {
		if !def.Open() {
			continue
		}
		recordType := &hirtypes.Record{Pos: def.Pos, Name: def.Name}
		comparable, err := hirtypes.Comparable(recordType, env)
		if err != nil || !comparable {
			continue
		}
		eq, err := dispatchEntry("equal", recordType, env)
		if err != nil {
			return nil, nil, err
		}
		dbg, err := dispatchEntry("debug", recordType, env)
		if err != nil {
			return nil, nil, err
		}
		equalDefs = append(equalDefs, eq)
		debugDefs = append(debugDefs, dbg)
	}
	return equalDefs, debugDefs, nil
}

func dispatchEntry(kind string, recordType hirtypes.Type, env *hirtypes.Environment) (*mir.FunctionDefinition, error) {
	name, err := reflect.FunctionName(kind, recordType, env)
	if err != nil {
		return nil, err
	}
	rec := recordType.(*hirtypes.Record)
	pos := recordType.Position()
	argA := mir.Argument{Name: "a", Type: &mir.VariantType{}}
	var argB *mir.Argument
	if kind == "equal" {
		b := mir.Argument{Name: "b", Type: &mir.VariantType{}}
		argB = &b
	}
	args := []mir.Argument{argA}
	callArgs := []mir.Expression{&mir.Variable{Base: mir.Base{Pos: pos}, Name: "a"}}
	if argB != nil {
		args = append(args, *argB)
		callArgs = append(callArgs, &mir.Variable{Base: mir.Base{Pos: pos}, Name: "b"})
	}
	helper := rec.Name + ".$" + kind
	body := &mir.Call{
		Base:     mir.Base{Pos: pos},
		Type:     &mir.VariantType{},
		Function: &mir.Variable{Base: mir.Base{Pos: pos}, Name: helper},
		Args:     callArgs,
	}
	return &mir.FunctionDefinition{Name: name, Arguments: args, Result: &mir.VariantType{}, Body: body}, nil
}
