package desugar

import (
	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/synth"
)

const (
	lhsName = "$lhs"
	rhsName = "$rhs"
)

// rewriteEquality implements the type-indexed equality rewrite table of
// spec §4.7, grounded on original_source's equal_operation.rs. `!=` is
// desugared after equality: the `==` rewrite for the operand type is built
// first and then wrapped in a NotOperation.
func rewriteEquality(op *hir.EqualityOperation, lhs, rhs hir.Expression, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	t, err := hirtypes.Canonicalize(op.Type, env)
	if err != nil {
		return nil, err
	}
	eq, err := equalExpr(t, lhs, rhs, op.Pos, env, cfg)
	if err != nil || op.Operator == hir.EqualityEqual {
		return eq, err
	}
	return &hir.NotOperation{Base: hir.Base{Pos: op.Pos}, Expression: eq}, nil
}

func equalExpr(t hirtypes.Type, lhs, rhs hir.Expression, pos hirtypes.Position, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	switch v := t.(type) {
	case *hirtypes.Boolean:
		return &hir.If{
			Base: hir.Base{Pos: pos},
			Cond: lhs,
			Then: &hir.If{Base: hir.Base{Pos: pos}, Cond: rhs,
				Then: boolLit(pos, true), Else: boolLit(pos, false)},
			Else: &hir.If{Base: hir.Base{Pos: pos}, Cond: rhs,
				Then: boolLit(pos, false), Else: boolLit(pos, true)},
		}, nil

	case *hirtypes.None:
		return boolLit(pos, true), nil

	case *hirtypes.Number, *hirtypes.String:
		return &hir.EqualityOperation{Base: hir.Base{Pos: pos}, Type: t, Operator: hir.EqualityEqual, Lhs: lhs, Rhs: rhs}, nil

	case *hirtypes.List:
		if cfg == nil {
			return nil, errors.MissingConfiguration(pos)
		}
		elemEqual, err := anyEqualFunction(v.Element, pos, env, cfg)
		if err != nil {
			return nil, err
		}
		return &hir.Call{
			Base:     hir.Base{Pos: pos},
			Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.List.EqualFunctionName},
			Args:     []hir.Expression{elemEqual, lhs, rhs},
		}, nil

	case *hirtypes.Map:
		if cfg == nil {
			return nil, errors.MissingConfiguration(pos)
		}
		mapContext, err := buildMapContext(v.Key, v.Value, pos, env, cfg)
		if err != nil {
			return nil, err
		}
		return &hir.Call{
			Base:     hir.Base{Pos: pos},
			Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.Map.EqualFunctionName},
			Args:     []hir.Expression{mapContext, lhs, rhs},
		}, nil

	case *hirtypes.Record:
		comparable, err := hirtypes.Comparable(v, env)
		if err != nil {
			return nil, err
		}
		if !comparable {
			return nil, errors.RecordNotComparable(pos, v.String())
		}
		return &hir.Call{
			Base:     hir.Base{Pos: pos},
			Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: synth.EqualFunctionName(v.Name)},
			Args:     []hir.Expression{lhs, rhs},
		}, nil

	case *hirtypes.Union:
		return unionEqual(v, lhs, rhs, pos, env, cfg)

	case *hirtypes.Reference:
		resolved, err := hirtypes.Resolve(v, env)
		if err != nil {
			return nil, err
		}
		return equalExpr(resolved, lhs, rhs, pos, env, cfg)

	default:
		return nil, errors.TypeNotComparable(pos, t.String())
	}
}

// unionEqual builds the nested IfType-of-IfType dispatch tree: for each
// member type of the union, test lhs against it, then (inside that
// branch) test rhs against the same member; if both match, recurse into
// the member-typed equality; the residual Else branch (every other member,
// computed as the scrutinee's members minus the one just matched) is
// false, since lhs and rhs are of different dynamic member types.
func unionEqual(u *hirtypes.Union, lhs, rhs hir.Expression, pos hirtypes.Position, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	members, err := hirtypes.UnionMembers(u, env)
	if err != nil {
		return nil, err
	}
	branches := make([]hir.IfTypeBranch, len(members))
	for i, member := range members {
		residual := residualMembers(members, member)
		residualType, ok := hirtypes.CreateUnion(residual, pos)
		if !ok {
			residualType = &hirtypes.None{Pos: pos}
		}
		inner, err := equalExpr(member, &hir.Variable{Base: hir.Base{Pos: pos}, Name: lhsName}, &hir.Variable{Base: hir.Base{Pos: pos}, Name: rhsName}, pos, env, cfg)
		if err != nil {
			return nil, err
		}
		rhsDispatch := &hir.IfType{
			Base:          hir.Base{Pos: pos},
			ScrutineeName: rhsName,
			Argument:      rhs,
			Branches: []hir.IfTypeBranch{{
				Type:       member,
				Expression: inner,
			}},
			Else: &hir.IfTypeElseBranch{Type: residualType, Expression: boolLit(pos, false)},
		}
		branches[i] = hir.IfTypeBranch{Type: member, Expression: rhsDispatch}
	}
	return &hir.IfType{
		Base:          hir.Base{Pos: pos},
		ScrutineeName: lhsName,
		Argument:      lhs,
		Branches:      branches,
	}, nil
}

func residualMembers(all []hirtypes.Type, matched hirtypes.Type) []hirtypes.Type {
	var out []hirtypes.Type
	for _, m := range all {
		if !hirtypes.Equal(m, matched) {
			out = append(out, m)
		}
	}
	return out
}

// anyEqualFunction builds the `\($lhs: Any, $rhs: Any) Boolean` wrapper a
// list/map equal helper expects for its element comparator, dispatching
// back into IfType(Any) on both sides before delegating to equalExpr for
// the concrete element type (original_source's transform_any_function).
func anyEqualFunction(elementType hirtypes.Type, pos hirtypes.Position, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	inner, err := equalExpr(elementType, &hir.Variable{Base: hir.Base{Pos: pos}, Name: lhsName}, &hir.Variable{Base: hir.Base{Pos: pos}, Name: rhsName}, pos, env, cfg)
	if err != nil {
		return nil, err
	}
	body := &hir.IfType{
		Base:          hir.Base{Pos: pos},
		ScrutineeName: lhsName,
		Argument:      &hir.Variable{Base: hir.Base{Pos: pos}, Name: lhsName},
		Branches: []hir.IfTypeBranch{{
			Type: elementType,
			Expression: &hir.IfType{
				Base:          hir.Base{Pos: pos},
				ScrutineeName: rhsName,
				Argument:      &hir.Variable{Base: hir.Base{Pos: pos}, Name: rhsName},
				Branches:      []hir.IfTypeBranch{{Type: elementType, Expression: inner}},
			},
		}},
	}
	return &hir.Lambda{
		Base: hir.Base{Pos: pos},
		Args: []hir.Arg{
			{Name: lhsName, Type: &hirtypes.Any{Pos: pos}},
			{Name: rhsName, Type: &hirtypes.Any{Pos: pos}},
		},
		ResultType: &hirtypes.Boolean{Pos: pos},
		Body:       body,
	}, nil
}

func boolLit(pos hirtypes.Position, v bool) *hir.BooleanLiteral {
	return &hir.BooleanLiteral{Base: hir.Base{Pos: pos}, Value: v}
}
