// Package coerce inserts explicit TypeCoercion nodes wherever a
// subexpression's inferred type is narrower than the type its context
// expects (spec §4.5): union/Any widening, list elements, map keys/values,
// record fields, call arguments, and each branch of an if/if-list/if-map/
// if-type individually coerced to the construct's own (already-inferred)
// result type. Coercion never narrows and is idempotent: running it twice
// over an already-coerced module inserts no further nodes, since a
// TypeCoercion's own inferred type already equals its target.
package coerce

import (
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// Module rewrites every function definition's body, inserting coercions.
func Module(m *hir.Module, env *hirtypes.Environment) (*hir.Module, error) {
	out := m.Clone()
	defs := make([]*hir.FunctionDefinition, len(m.FunctionDefinitions))
	for i, def := range m.FunctionDefinitions {
		lambda, err := coerceLambda(def.Lambda, env)
		if err != nil {
			return nil, err
		}
		nd := *def
		nd.Lambda = lambda
		defs[i] = &nd
	}
	out.FunctionDefinitions = defs
	return out, nil
}

func coerceLambda(l *hir.Lambda, env *hirtypes.Environment) (*hir.Lambda, error) {
	body, err := coerceTo(l.Body, l.ResultType, env)
	if err != nil {
		return nil, err
	}
	nl := *l
	nl.Body = body
	return &nl, nil
}

// coerceTo recurses into expr and, once its children are coerced, wraps the
// result in a TypeCoercion if expected is non-nil and strictly wider than
// expr's own inferred type. expected == nil (used for positions with no
// declared/propagated type, e.g. the top of a standalone statement) means
// no wrapping is applied.
func coerceTo(expr hir.Expression, expected hirtypes.Type, env *hirtypes.Environment) (hir.Expression, error) {
	rewritten, err := coerceChildren(expr, env)
	if err != nil {
		return nil, err
	}
	if expected == nil {
		return rewritten, nil
	}
	from := rewritten.InferredType()
	if hirtypes.Equal(from, expected) {
		return rewritten, nil
	}
	ok, err := hirtypes.Subsumes(from, expected, env)
	if err != nil {
		return nil, err
	}
	if !ok {
		return rewritten, nil
	}
	coercion := &hir.TypeCoercion{
		Base:     hir.Base{Pos: rewritten.Position()},
		From:     from,
		To:       expected,
		Argument: rewritten,
	}
	coercion.SetInferredType(expected)
	return coercion, nil
}

// coerceChildren recurses into expr's subexpressions, coercing each to the
// type its own context demands, without touching expr's own InferredType
// slot (the caller, coerceTo, decides whether to wrap the whole node).
func coerceChildren(expr hir.Expression, env *hirtypes.Environment) (hir.Expression, error) {
	switch e := expr.(type) {
	case *hir.BooleanLiteral, *hir.NoneLiteral, *hir.NumberLiteral, *hir.StringLiteral, *hir.Variable:
		return expr, nil

	case *hir.TypeCoercion:
		// Already coerced; re-coercing its argument to the same From would
		// be a no-op, so leave it untouched (idempotence).
		return e, nil

	case *hir.Lambda:
		nl, err := coerceLambda(e, env)
		if err != nil {
			return nil, err
		}
		nl.SetInferredType(e.InferredType())
		return nl, nil

	case *hir.Call:
		fn, err := coerceTo(e.Function, nil, env)
		if err != nil {
			return nil, err
		}
		fnType, ok, err := hirtypes.CanonicalizeFunction(e.FunctionType, env)
		if err != nil {
			return nil, err
		}
		args := make([]hir.Expression, len(e.Args))
		for i, a := range e.Args {
			var want hirtypes.Type
			if ok && i < len(fnType.Args) {
				want = fnType.Args[i]
			}
			na, err := coerceTo(a, want, env)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}
		n := *e
		n.Function = fn
		n.Args = args
		return &n, nil

	case *hir.Let:
		bound, err := coerceTo(e.Bound, e.Declared, env)
		if err != nil {
			return nil, err
		}
		body, err := coerceTo(e.Body, nil, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Bound, n.Body = bound, body
		return &n, nil

	case *hir.If:
		result := e.InferredType()
		cond, err := coerceTo(e.Cond, nil, env)
		if err != nil {
			return nil, err
		}
		then, err := coerceTo(e.Then, result, env)
		if err != nil {
			return nil, err
		}
		els, err := coerceTo(e.Else, result, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Cond, n.Then, n.Else = cond, then, els
		return &n, nil

	case *hir.IfList:
		result := e.InferredType()
		list, err := coerceTo(e.List, nil, env)
		if err != nil {
			return nil, err
		}
		then, err := coerceTo(e.Then, result, env)
		if err != nil {
			return nil, err
		}
		els, err := coerceTo(e.Else, result, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.List, n.Then, n.Else = list, then, els
		return &n, nil

	case *hir.IfMap:
		result := e.InferredType()
		mapExpr, err := coerceTo(e.Map, nil, env)
		if err != nil {
			return nil, err
		}
		key, err := coerceTo(e.Key, e.KeyType, env)
		if err != nil {
			return nil, err
		}
		then, err := coerceTo(e.Then, result, env)
		if err != nil {
			return nil, err
		}
		els, err := coerceTo(e.Else, result, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Map, n.Key, n.Then, n.Else = mapExpr, key, then, els
		return &n, nil

	case *hir.IfType:
		result := e.InferredType()
		arg, err := coerceTo(e.Argument, nil, env)
		if err != nil {
			return nil, err
		}
		branches := make([]hir.IfTypeBranch, len(e.Branches))
		for i, b := range e.Branches {
			be, err := coerceTo(b.Expression, result, env)
			if err != nil {
				return nil, err
			}
			branches[i] = hir.IfTypeBranch{Type: b.Type, Expression: be}
		}
		n := *e
		n.Argument = arg
		n.Branches = branches
		if e.Else != nil {
			be, err := coerceTo(e.Else.Expression, result, env)
			if err != nil {
				return nil, err
			}
			n.Else = &hir.IfTypeElseBranch{Type: e.Else.Type, Expression: be}
		}
		return &n, nil

	case *hir.List:
		els := make([]hir.ListElement, len(e.Elements))
		for i, el := range e.Elements {
			want := e.ElementType
			if el.Kind == hir.ListElementMultiple {
				want = &hirtypes.List{Pos: e.Pos, Element: e.ElementType}
			}
			ne, err := coerceTo(el.Expression, want, env)
			if err != nil {
				return nil, err
			}
			els[i] = hir.ListElement{Kind: el.Kind, Expression: ne}
		}
		n := *e
		n.Elements = els
		return &n, nil

	case *hir.ListComprehension:
		branches := make([]hir.ComprehensionBranch, len(e.Branches))
		for i, b := range e.Branches {
			nl, err := coerceTo(b.List, nil, env)
			if err != nil {
				return nil, err
			}
			branches[i] = hir.ComprehensionBranch{Name: b.Name, List: nl}
		}
		elem, err := coerceTo(e.Element, e.OutputType, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Branches = branches
		n.Element = elem
		return &n, nil

	case *hir.Map:
		els := make([]hir.MapElement, len(e.Elements))
		for i, el := range e.Elements {
			switch el.Kind {
			case hir.MapElementSingle:
				k, err := coerceTo(el.Key, e.KeyType, env)
				if err != nil {
					return nil, err
				}
				v, err := coerceTo(el.Value, e.ValueType, env)
				if err != nil {
					return nil, err
				}
				els[i] = hir.MapElement{Kind: el.Kind, Key: k, Value: v}
			case hir.MapElementMultiple:
				mv, err := coerceTo(el.Map, &hirtypes.Map{Pos: e.Pos, Key: e.KeyType, Value: e.ValueType}, env)
				if err != nil {
					return nil, err
				}
				els[i] = hir.MapElement{Kind: el.Kind, Map: mv}
			case hir.MapElementRemoval:
				k, err := coerceTo(el.Key, e.KeyType, env)
				if err != nil {
					return nil, err
				}
				els[i] = hir.MapElement{Kind: el.Kind, Key: k}
			}
		}
		n := *e
		n.Elements = els
		return &n, nil

	case *hir.RecordConstruction:
		def, err := recordDefOfType(e.Type, env)
		if err != nil {
			return nil, err
		}
		fields := make([]hir.RecordFieldValue, len(e.Fields))
		for i, f := range e.Fields {
			want, _ := def.FieldType(f.Name)
			nf, err := coerceTo(f.Expression, want, env)
			if err != nil {
				return nil, err
			}
			fields[i] = hir.RecordFieldValue{Name: f.Name, Expression: nf}
		}
		n := *e
		n.Fields = fields
		return &n, nil

	case *hir.RecordDeconstruction:
		rec, err := coerceTo(e.Record, nil, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Record = rec
		return &n, nil

	case *hir.RecordUpdate:
		def, err := recordDefOfType(e.Type, env)
		if err != nil {
			return nil, err
		}
		rec, err := coerceTo(e.Record, e.Type, env)
		if err != nil {
			return nil, err
		}
		fields := make([]hir.RecordFieldValue, len(e.Fields))
		for i, f := range e.Fields {
			want, _ := def.FieldType(f.Name)
			nf, err := coerceTo(f.Expression, want, env)
			if err != nil {
				return nil, err
			}
			fields[i] = hir.RecordFieldValue{Name: f.Name, Expression: nf}
		}
		n := *e
		n.Record = rec
		n.Fields = fields
		return &n, nil

	case *hir.Thunk:
		body, err := coerceTo(e.Expr, e.BodyType, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Expr = body
		return &n, nil

	case *hir.ArithmeticOperation:
		lhs, err := coerceTo(e.Lhs, &hirtypes.Number{Pos: e.Pos}, env)
		if err != nil {
			return nil, err
		}
		rhs, err := coerceTo(e.Rhs, &hirtypes.Number{Pos: e.Pos}, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return &n, nil

	case *hir.BooleanOperation:
		lhs, err := coerceTo(e.Lhs, &hirtypes.Boolean{Pos: e.Pos}, env)
		if err != nil {
			return nil, err
		}
		rhs, err := coerceTo(e.Rhs, &hirtypes.Boolean{Pos: e.Pos}, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return &n, nil

	case *hir.EqualityOperation:
		lhs, err := coerceTo(e.Lhs, e.Type, env)
		if err != nil {
			return nil, err
		}
		rhs, err := coerceTo(e.Rhs, e.Type, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return &n, nil

	case *hir.OrderOperation:
		lhs, err := coerceTo(e.Lhs, &hirtypes.Number{Pos: e.Pos}, env)
		if err != nil {
			return nil, err
		}
		rhs, err := coerceTo(e.Rhs, &hirtypes.Number{Pos: e.Pos}, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return &n, nil

	case *hir.NotOperation:
		arg, err := coerceTo(e.Expression, &hirtypes.Boolean{Pos: e.Pos}, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Expression = arg
		return &n, nil

	case *hir.TryOperation:
		inner, err := coerceTo(e.Expression, nil, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Expression = inner
		return &n, nil

	case *hir.SpawnOperation:
		lambda, err := coerceLambda(e.Function, env)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Function = lambda
		return &n, nil

	default:
		return expr, nil
	}
}

func recordDefOfType(t hirtypes.Type, env *hirtypes.Environment) (*hirtypes.RecordDefinition, error) {
	c, err := hirtypes.Canonicalize(t, env)
	if err != nil {
		return nil, err
	}
	rec := c.(*hirtypes.Record)
	def, _ := env.Record(rec.Name)
	return def, nil
}
