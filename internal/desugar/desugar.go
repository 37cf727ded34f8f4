// Package desugar rewrites every polymorphic surface operation into
// monomorphic runtime-helper calls or IfType dispatch trees (spec §4.7),
// targeting the names supplied by a config.TypeConfiguration. It is
// grounded on original_source's transformation/ directory: equal_operation
// (equality/hashing), and the list/map literal builders described there.
// Desugaring runs after coercion, so every node's InferredType slot is
// already final; rewritten nodes keep the position of the node they
// replace and carry the same InferredType.
package desugar

import (
	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// Module rewrites every function definition's body.
func Module(m *hir.Module, env *hirtypes.Environment, cfg *config.TypeConfiguration) (*hir.Module, error) {
	out := m.Clone()
	defs := make([]*hir.FunctionDefinition, len(m.FunctionDefinitions))
	for i, def := range m.FunctionDefinitions {
		lambda, err := desugarLambda(def.Lambda, env, cfg)
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

func desugarLambda(l *hir.Lambda, env *hirtypes.Environment, cfg *config.TypeConfiguration) (*hir.Lambda, error) {
	body, err := rewrite(l.Body, env, cfg)
	if err != nil {
		return nil, err
	}
	nl := *l
	nl.Body = body
	return &nl, nil
}

// rewrite recurses postorder: children are rewritten first, then the node
// itself is desugared if it names a polymorphic surface operation.
func rewrite(expr hir.Expression, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	if expr == nil {
		return nil, nil
	}
	switch e := expr.(type) {
	case *hir.BooleanLiteral, *hir.NoneLiteral, *hir.NumberLiteral, *hir.StringLiteral, *hir.Variable:
		return expr, nil

	case *hir.Lambda:
		return desugarLambda(e, env, cfg)

	case *hir.Call:
		fn, err := rewrite(e.Function, env, cfg)
		if err != nil {
			return nil, err
		}
		args := make([]hir.Expression, len(e.Args))
		for i, a := range e.Args {
			na, err := rewrite(a, env, cfg)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}
		n := *e
		n.Function, n.Args = fn, args
		return &n, nil

	case *hir.Let:
		bound, err := rewrite(e.Bound, env, cfg)
		if err != nil {
			return nil, err
		}
		body, err := rewrite(e.Body, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Bound, n.Body = bound, body
		return &n, nil

	case *hir.If:
		cond, err := rewrite(e.Cond, env, cfg)
		if err != nil {
			return nil, err
		}
		then, err := rewrite(e.Then, env, cfg)
		if err != nil {
			return nil, err
		}
		els, err := rewrite(e.Else, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Cond, n.Then, n.Else = cond, then, els
		return &n, nil

	case *hir.IfList:
		list, err := rewrite(e.List, env, cfg)
		if err != nil {
			return nil, err
		}
		then, err := rewrite(e.Then, env, cfg)
		if err != nil {
			return nil, err
		}
		els, err := rewrite(e.Else, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.List, n.Then, n.Else = list, then, els
		return &n, nil

	case *hir.IfMap:
		mapExpr, err := rewrite(e.Map, env, cfg)
		if err != nil {
			return nil, err
		}
		key, err := rewrite(e.Key, env, cfg)
		if err != nil {
			return nil, err
		}
		then, err := rewrite(e.Then, env, cfg)
		if err != nil {
			return nil, err
		}
		els, err := rewrite(e.Else, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Map, n.Key, n.Then, n.Else = mapExpr, key, then, els
		return &n, nil

	case *hir.IfType:
		arg, err := rewrite(e.Argument, env, cfg)
		if err != nil {
			return nil, err
		}
		branches := make([]hir.IfTypeBranch, len(e.Branches))
		for i, b := range e.Branches {
			be, err := rewrite(b.Expression, env, cfg)
			if err != nil {
				return nil, err
			}
			branches[i] = hir.IfTypeBranch{Type: b.Type, Expression: be}
		}
		n := *e
		n.Argument, n.Branches = arg, branches
		if e.Else != nil {
			be, err := rewrite(e.Else.Expression, env, cfg)
			if err != nil {
				return nil, err
			}
			n.Else = &hir.IfTypeElseBranch{Type: e.Else.Type, Expression: be}
		}
		return &n, nil

	case *hir.List:
		return rewriteList(e, env, cfg)

	case *hir.ListComprehension:
		branches := make([]hir.ComprehensionBranch, len(e.Branches))
		for i, b := range e.Branches {
			nl, err := rewrite(b.List, env, cfg)
			if err != nil {
				return nil, err
			}
			branches[i] = hir.ComprehensionBranch{Name: b.Name, List: nl}
		}
		elem, err := rewrite(e.Element, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Branches, n.Element = branches, elem
		return &n, nil

	case *hir.Map:
		return rewriteMap(e, env, cfg)

	case *hir.RecordConstruction:
		fields := make([]hir.RecordFieldValue, len(e.Fields))
		for i, f := range e.Fields {
			nf, err := rewrite(f.Expression, env, cfg)
			if err != nil {
				return nil, err
			}
			fields[i] = hir.RecordFieldValue{Name: f.Name, Expression: nf}
		}
		n := *e
		n.Fields = fields
		return &n, nil

	case *hir.RecordDeconstruction:
		rec, err := rewrite(e.Record, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Record = rec
		return &n, nil

	case *hir.RecordUpdate:
		rec, err := rewrite(e.Record, env, cfg)
		if err != nil {
			return nil, err
		}
		fields := make([]hir.RecordFieldValue, len(e.Fields))
		for i, f := range e.Fields {
			nf, err := rewrite(f.Expression, env, cfg)
			if err != nil {
				return nil, err
			}
			fields[i] = hir.RecordFieldValue{Name: f.Name, Expression: nf}
		}
		n := *e
		n.Record, n.Fields = rec, fields
		return &n, nil

	case *hir.Thunk:
		body, err := rewrite(e.Expr, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Expr = body
		return &n, nil

	case *hir.TypeCoercion:
		arg, err := rewrite(e.Argument, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Argument = arg
		return &n, nil

	case *hir.ArithmeticOperation:
		lhs, err := rewrite(e.Lhs, env, cfg)
		if err != nil {
			return nil, err
		}
		rhs, err := rewrite(e.Rhs, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return &n, nil

	case *hir.BooleanOperation:
		lhs, err := rewrite(e.Lhs, env, cfg)
		if err != nil {
			return nil, err
		}
		rhs, err := rewrite(e.Rhs, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return &n, nil

	case *hir.EqualityOperation:
		lhs, err := rewrite(e.Lhs, env, cfg)
		if err != nil {
			return nil, err
		}
		rhs, err := rewrite(e.Rhs, env, cfg)
		if err != nil {
			return nil, err
		}
		return rewriteEquality(e, lhs, rhs, env, cfg)

	case *hir.OrderOperation:
		lhs, err := rewrite(e.Lhs, env, cfg)
		if err != nil {
			return nil, err
		}
		rhs, err := rewrite(e.Rhs, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Lhs, n.Rhs = lhs, rhs
		return &n, nil

	case *hir.NotOperation:
		arg, err := rewrite(e.Expression, env, cfg)
		if err != nil {
			return nil, err
		}
		n := *e
		n.Expression = arg
		return &n, nil

	case *hir.TryOperation:
		inner, err := rewrite(e.Expression, env, cfg)
		if err != nil {
			return nil, err
		}
		return rewriteTry(e, inner, env)

	case *hir.SpawnOperation:
		lambda, err := desugarLambda(e.Function, env, cfg)
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
