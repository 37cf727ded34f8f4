package hir

import "github.com/sunholo/corehir/internal/hirtypes"

// TypeTransformer rewrites every Type appearing in a module: inferred-type
// slots, declared annotations, and record/type-alias definitions. Grounded
// on original_source/lib/hir/src/analysis/type_transformer.rs, which the
// desugaring stage reuses to replace every Reference with its resolved form
// before lowering. No pass in this module calls TransformTypes; it pushes
// a substitution through an already-inferred tree for callers that do.
type TypeTransformer func(hirtypes.Type) hirtypes.Type

// TransformTypes rewrites the type of every expression in m via f, along
// with lambda result types and argument declarations. It is a read/rebuild
// pass: every node with a type slot gets a fresh copy carrying f(oldType).
func TransformTypes(m *Module, f TypeTransformer) *Module {
	out := m.Clone()
	defs := make([]*FunctionDefinition, len(m.FunctionDefinitions))
	for i, def := range m.FunctionDefinitions {
		nd := *def
		nd.Lambda = transformLambdaTypes(def.Lambda, f)
		defs[i] = &nd
	}
	out.FunctionDefinitions = defs
	return out
}

func transformLambdaTypes(l *Lambda, f TypeTransformer) *Lambda {
	nl := *l
	args := make([]Arg, len(l.Args))
	for i, a := range l.Args {
		args[i] = Arg{Name: a.Name, Type: mapType(a.Type, f)}
	}
	nl.Args = args
	nl.ResultType = mapType(l.ResultType, f)
	nl.Body = transformExprTypes(l.Body, f)
	return &nl
}

func mapType(t hirtypes.Type, f TypeTransformer) hirtypes.Type {
	if t == nil {
		return nil
	}
	return f(t)
}

// transformExprTypes rewrites every type slot reachable from expr, including
// the common InferredType slot on the Base embedded in every node.
func transformExprTypes(expr Expression, f TypeTransformer) Expression {
	if expr == nil {
		return nil
	}
	rebuilt := cloneWithChildren(expr, f)
	if rebuilt.InferredType() != nil {
		rebuilt.SetInferredType(mapType(rebuilt.InferredType(), f))
	}
	return rebuilt
}

// cloneWithChildren rebuilds expr with its own type-bearing sub-slots
// mapped through f and its child expressions recursively transformed.
func cloneWithChildren(expr Expression, f TypeTransformer) Expression {
	switch e := expr.(type) {
	case *Lambda:
		return transformLambdaTypes(e, f)
	case *Call:
		n := *e
		n.FunctionType = mapType(e.FunctionType, f)
		n.Function = transformExprTypes(e.Function, f)
		args := make([]Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = transformExprTypes(a, f)
		}
		n.Args = args
		return &n
	case *Let:
		n := *e
		n.Declared = mapType(e.Declared, f)
		n.Bound = transformExprTypes(e.Bound, f)
		n.Body = transformExprTypes(e.Body, f)
		return &n
	case *If:
		n := *e
		n.Cond = transformExprTypes(e.Cond, f)
		n.Then = transformExprTypes(e.Then, f)
		n.Else = transformExprTypes(e.Else, f)
		return &n
	case *IfList:
		n := *e
		n.ElementType = mapType(e.ElementType, f)
		n.List = transformExprTypes(e.List, f)
		n.Then = transformExprTypes(e.Then, f)
		n.Else = transformExprTypes(e.Else, f)
		return &n
	case *IfMap:
		n := *e
		n.KeyType = mapType(e.KeyType, f)
		n.ValueType = mapType(e.ValueType, f)
		n.Map = transformExprTypes(e.Map, f)
		n.Key = transformExprTypes(e.Key, f)
		n.Then = transformExprTypes(e.Then, f)
		n.Else = transformExprTypes(e.Else, f)
		return &n
	case *IfType:
		n := *e
		n.Argument = transformExprTypes(e.Argument, f)
		branches := make([]IfTypeBranch, len(e.Branches))
		for i, b := range e.Branches {
			branches[i] = IfTypeBranch{Type: mapType(b.Type, f), Expression: transformExprTypes(b.Expression, f)}
		}
		n.Branches = branches
		if e.Else != nil {
			n.Else = &IfTypeElseBranch{Type: mapType(e.Else.Type, f), Expression: transformExprTypes(e.Else.Expression, f)}
		}
		return &n
	case *List:
		n := *e
		n.ElementType = mapType(e.ElementType, f)
		els := make([]ListElement, len(e.Elements))
		for i, el := range e.Elements {
			els[i] = ListElement{Kind: el.Kind, Expression: transformExprTypes(el.Expression, f)}
		}
		n.Elements = els
		return &n
	case *ListComprehension:
		n := *e
		n.OutputType = mapType(e.OutputType, f)
		branches := make([]ComprehensionBranch, len(e.Branches))
		for i, b := range e.Branches {
			branches[i] = ComprehensionBranch{Name: b.Name, List: transformExprTypes(b.List, f)}
		}
		n.Branches = branches
		n.Element = transformExprTypes(e.Element, f)
		return &n
	case *Map:
		n := *e
		n.KeyType, n.ValueType = mapType(e.KeyType, f), mapType(e.ValueType, f)
		els := make([]MapElement, len(e.Elements))
		for i, el := range e.Elements {
			els[i] = MapElement{Kind: el.Kind, Key: transformExprTypes(el.Key, f), Value: transformExprTypes(el.Value, f), Map: transformExprTypes(el.Map, f)}
		}
		n.Elements = els
		return &n
	case *RecordConstruction:
		n := *e
		n.Type = mapType(e.Type, f)
		n.Fields = transformFieldTypes(e.Fields, f)
		return &n
	case *RecordDeconstruction:
		n := *e
		n.RecordType = mapType(e.RecordType, f)
		n.Record = transformExprTypes(e.Record, f)
		return &n
	case *RecordUpdate:
		n := *e
		n.Type = mapType(e.Type, f)
		n.Record = transformExprTypes(e.Record, f)
		n.Fields = transformFieldTypes(e.Fields, f)
		return &n
	case *Thunk:
		n := *e
		n.BodyType = mapType(e.BodyType, f)
		n.Expr = transformExprTypes(e.Expr, f)
		return &n
	case *TypeCoercion:
		n := *e
		n.From, n.To = mapType(e.From, f), mapType(e.To, f)
		n.Argument = transformExprTypes(e.Argument, f)
		return &n
	case *ArithmeticOperation:
		n := *e
		n.Lhs, n.Rhs = transformExprTypes(e.Lhs, f), transformExprTypes(e.Rhs, f)
		return &n
	case *BooleanOperation:
		n := *e
		n.Lhs, n.Rhs = transformExprTypes(e.Lhs, f), transformExprTypes(e.Rhs, f)
		return &n
	case *EqualityOperation:
		n := *e
		n.Type = mapType(e.Type, f)
		n.Lhs, n.Rhs = transformExprTypes(e.Lhs, f), transformExprTypes(e.Rhs, f)
		return &n
	case *OrderOperation:
		n := *e
		n.Lhs, n.Rhs = transformExprTypes(e.Lhs, f), transformExprTypes(e.Rhs, f)
		return &n
	case *NotOperation:
		n := *e
		n.Expression = transformExprTypes(e.Expression, f)
		return &n
	case *TryOperation:
		n := *e
		n.Type = mapType(e.Type, f)
		n.Expression = transformExprTypes(e.Expression, f)
		return &n
	case *SpawnOperation:
		n := *e
		n.Function = transformLambdaTypes(e.Function, f)
		return &n
	default:
		return expr
	}
}

func transformFieldTypes(fields []RecordFieldValue, f TypeTransformer) []RecordFieldValue {
	out := make([]RecordFieldValue, len(fields))
	for i, fld := range fields {
		out[i] = RecordFieldValue{Name: fld.Name, Expression: transformExprTypes(fld.Expression, f)}
	}
	return out
}
