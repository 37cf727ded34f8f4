package hir

// Visit walks expr in deterministic left-to-right order (spec §5), calling
// fn on every sub-expression including expr itself. It is the generic
// expression visitor used by validators that only need to read the tree
// (duplicate-name, try-placement).
func Visit(expr Expression, fn func(Expression)) {
	if expr == nil {
		return
	}
	fn(expr)
	switch e := expr.(type) {
	case *Lambda:
		Visit(e.Body, fn)
	case *Call:
		Visit(e.Function, fn)
		for _, a := range e.Args {
			Visit(a, fn)
		}
	case *Let:
		Visit(e.Bound, fn)
		Visit(e.Body, fn)
	case *If:
		Visit(e.Cond, fn)
		Visit(e.Then, fn)
		Visit(e.Else, fn)
	case *IfList:
		Visit(e.List, fn)
		Visit(e.Then, fn)
		Visit(e.Else, fn)
	case *IfMap:
		Visit(e.Map, fn)
		Visit(e.Key, fn)
		Visit(e.Then, fn)
		Visit(e.Else, fn)
	case *IfType:
		Visit(e.Argument, fn)
		for _, b := range e.Branches {
			Visit(b.Expression, fn)
		}
		if e.Else != nil {
			Visit(e.Else.Expression, fn)
		}
	case *List:
		for _, el := range e.Elements {
			Visit(el.Expression, fn)
		}
	case *ListComprehension:
		Visit(e.Element, fn)
		for _, b := range e.Branches {
			Visit(b.List, fn)
		}
	case *Map:
		for _, el := range e.Elements {
			switch el.Kind {
			case MapElementSingle:
				Visit(el.Key, fn)
				Visit(el.Value, fn)
			case MapElementMultiple:
				Visit(el.Map, fn)
			case MapElementRemoval:
				Visit(el.Key, fn)
			}
		}
	case *RecordConstruction:
		for _, f := range e.Fields {
			Visit(f.Expression, fn)
		}
	case *RecordDeconstruction:
		Visit(e.Record, fn)
	case *RecordUpdate:
		Visit(e.Record, fn)
		for _, f := range e.Fields {
			Visit(f.Expression, fn)
		}
	case *Thunk:
		Visit(e.Expr, fn)
	case *TypeCoercion:
		Visit(e.Argument, fn)
	case *ArithmeticOperation:
		Visit(e.Lhs, fn)
		Visit(e.Rhs, fn)
	case *BooleanOperation:
		Visit(e.Lhs, fn)
		Visit(e.Rhs, fn)
	case *EqualityOperation:
		Visit(e.Lhs, fn)
		Visit(e.Rhs, fn)
	case *OrderOperation:
		Visit(e.Lhs, fn)
		Visit(e.Rhs, fn)
	case *NotOperation:
		Visit(e.Expression, fn)
	case *TryOperation:
		Visit(e.Expression, fn)
	case *SpawnOperation:
		Visit(e.Function.Body, fn)
	}
}

// VisitModule visits every expression reachable from a function definition,
// as the try-placement and privacy validators do (spec §4.2): one pass per
// top-level lambda.
func VisitModule(m *Module, fn func(Expression)) {
	for _, def := range m.FunctionDefinitions {
		Visit(def.Lambda.Body, fn)
	}
}

// Transformer rewrites every Variable reference in an expression tree,
// respecting lexical scope: a transform is never applied to a name that is
// shadowed by an enclosing Lambda argument, Let binding, or pattern-bound
// name (IfList/IfMap/IfType), mirroring
// original_source/lib/hir/src/analysis/ir/variable_transformer.rs.
type Transformer func(v *Variable) Expression

// TransformModule rewrites every function definition's body.
func TransformModule(m *Module, t Transformer) *Module {
	out := m.Clone()
	defs := make([]*FunctionDefinition, len(m.FunctionDefinitions))
	for i, def := range m.FunctionDefinitions {
		nd := *def
		nd.Lambda = transformLambda(def.Lambda, t)
		defs[i] = &nd
	}
	out.FunctionDefinitions = defs
	return out
}

func transformLambda(l *Lambda, t Transformer) *Lambda {
	bound := make(map[string]bool, len(l.Args))
	for _, a := range l.Args {
		bound[a.Name] = true
	}
	scoped := func(v *Variable) Expression {
		if bound[v.Name] {
			return v
		}
		return t(v)
	}
	nl := *l
	nl.Body = transformExpr(l.Body, scoped)
	return &nl
}

// transformExpr applies t to every free Variable in expr, re-scoping t at
// every binder (Let, Lambda, IfList, IfMap, IfType, comprehension) so that
// shadowed names are never rewritten.
func transformExpr(expr Expression, t func(*Variable) Expression) Expression {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *Variable:
		return t(e)
	case *Lambda:
		return transformLambda(e, Transformer(t))
	case *Call:
		n := *e
		n.Function = transformExpr(e.Function, t)
		n.Args = transformExprs(e.Args, t)
		return &n
	case *Let:
		n := *e
		n.Bound = transformExpr(e.Bound, t)
		if e.HasName {
			shadowed := shadow(t, e.Name)
			n.Body = transformExpr(e.Body, shadowed)
		} else {
			n.Body = transformExpr(e.Body, t)
		}
		return &n
	case *If:
		n := *e
		n.Cond = transformExpr(e.Cond, t)
		n.Then = transformExpr(e.Then, t)
		n.Else = transformExpr(e.Else, t)
		return &n
	case *IfList:
		n := *e
		n.List = transformExpr(e.List, t)
		inner := shadow(shadow(t, e.First), e.Rest)
		n.Then = transformExpr(e.Then, inner)
		n.Else = transformExpr(e.Else, t)
		return &n
	case *IfMap:
		n := *e
		n.Map = transformExpr(e.Map, t)
		n.Key = transformExpr(e.Key, t)
		n.Then = transformExpr(e.Then, shadow(t, e.Name))
		n.Else = transformExpr(e.Else, t)
		return &n
	case *IfType:
		n := *e
		n.Argument = transformExpr(e.Argument, t)
		inner := shadow(t, e.ScrutineeName)
		branches := make([]IfTypeBranch, len(e.Branches))
		for i, b := range e.Branches {
			branches[i] = IfTypeBranch{Type: b.Type, Expression: transformExpr(b.Expression, inner)}
		}
		n.Branches = branches
		if e.Else != nil {
			n.Else = &IfTypeElseBranch{Type: e.Else.Type, Expression: transformExpr(e.Else.Expression, inner)}
		}
		return &n
	case *List:
		n := *e
		els := make([]ListElement, len(e.Elements))
		for i, el := range e.Elements {
			els[i] = ListElement{Kind: el.Kind, Expression: transformExpr(el.Expression, t)}
		}
		n.Elements = els
		return &n
	case *ListComprehension:
		n := *e
		inner := t
		branches := make([]ComprehensionBranch, len(e.Branches))
		for i, b := range e.Branches {
			branches[i] = ComprehensionBranch{Name: b.Name, List: transformExpr(b.List, inner)}
			inner = shadow(inner, b.Name)
		}
		n.Branches = branches
		n.Element = transformExpr(e.Element, inner)
		return &n
	case *Map:
		n := *e
		els := make([]MapElement, len(e.Elements))
		for i, el := range e.Elements {
			switch el.Kind {
			case MapElementSingle:
				els[i] = MapElement{Kind: el.Kind, Key: transformExpr(el.Key, t), Value: transformExpr(el.Value, t)}
			case MapElementMultiple:
				els[i] = MapElement{Kind: el.Kind, Map: transformExpr(el.Map, t)}
			case MapElementRemoval:
				els[i] = MapElement{Kind: el.Kind, Key: transformExpr(el.Key, t)}
			}
		}
		n.Elements = els
		return &n
	case *RecordConstruction:
		n := *e
		n.Fields = transformFields(e.Fields, t)
		return &n
	case *RecordDeconstruction:
		n := *e
		n.Record = transformExpr(e.Record, t)
		return &n
	case *RecordUpdate:
		n := *e
		n.Record = transformExpr(e.Record, t)
		n.Fields = transformFields(e.Fields, t)
		return &n
	case *Thunk:
		n := *e
		n.Expr = transformExpr(e.Expr, t)
		return &n
	case *TypeCoercion:
		n := *e
		n.Argument = transformExpr(e.Argument, t)
		return &n
	case *ArithmeticOperation:
		n := *e
		n.Lhs, n.Rhs = transformExpr(e.Lhs, t), transformExpr(e.Rhs, t)
		return &n
	case *BooleanOperation:
		n := *e
		n.Lhs, n.Rhs = transformExpr(e.Lhs, t), transformExpr(e.Rhs, t)
		return &n
	case *EqualityOperation:
		n := *e
		n.Lhs, n.Rhs = transformExpr(e.Lhs, t), transformExpr(e.Rhs, t)
		return &n
	case *OrderOperation:
		n := *e
		n.Lhs, n.Rhs = transformExpr(e.Lhs, t), transformExpr(e.Rhs, t)
		return &n
	case *NotOperation:
		n := *e
		n.Expression = transformExpr(e.Expression, t)
		return &n
	case *TryOperation:
		n := *e
		n.Expression = transformExpr(e.Expression, t)
		return &n
	case *SpawnOperation:
		n := *e
		n.Function = transformLambda(e.Function, Transformer(t))
		return &n
	default:
		return expr
	}
}

func transformExprs(exprs []Expression, t func(*Variable) Expression) []Expression {
	out := make([]Expression, len(exprs))
	for i, e := range exprs {
		out[i] = transformExpr(e, t)
	}
	return out
}

func transformFields(fields []RecordFieldValue, t func(*Variable) Expression) []RecordFieldValue {
	out := make([]RecordFieldValue, len(fields))
	for i, f := range fields {
		out[i] = RecordFieldValue{Name: f.Name, Expression: transformExpr(f.Expression, t)}
	}
	return out
}

// shadow returns a transform identical to t except that it leaves name
// untouched, modeling a newly introduced binder.
func shadow(t func(*Variable) Expression, name string) func(*Variable) Expression {
	return func(v *Variable) Expression {
		if v.Name == name {
			return v
		}
		return t(v)
	}
}
