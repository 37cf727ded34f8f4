package infer

import (
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// Check re-verifies every node's InferredType against the expected type its
// parent imposed on it (spec §4.4). It is run twice: once immediately after
// Module (catching an inference bug before coercion runs), and once after
// coercion (where it must succeed unconditionally, since coercion's whole
// job is to make every subsumption check pass — spec's testable property
// that checking a coerced module is idempotent).
func Check(m *hir.Module, env *hirtypes.Environment) error {
	for _, def := range m.FunctionDefinitions {
		if err := checkLambda(def.Lambda, env); err != nil {
			return err
		}
	}
	return nil
}

func checkLambda(l *hir.Lambda, env *hirtypes.Environment) error {
	if l.Body.InferredType() == nil {
		return errors.TypeNotInferred(l.Body.Position())
	}
	if l.ResultType != nil {
		ok, err := hirtypes.Subsumes(l.Body.InferredType(), l.ResultType, env)
		if err != nil {
			return err
		}
		if !ok {
			return errors.TypesNotMatched(l.Body.Position(), l.ResultType.Position())
		}
	}
	return checkExpr(l.Body, env)
}

// checkExpr recurses through expr, verifying that every subexpression's
// recorded type was actually inferred and that every place spec §4.3 calls
// for a subsumption check still holds.
func checkExpr(expr hir.Expression, env *hirtypes.Environment) error {
	if expr == nil {
		return nil
	}
	if expr.InferredType() == nil {
		return errors.TypeNotInferred(expr.Position())
	}
	switch e := expr.(type) {
	case *hir.Lambda:
		return checkLambda(e, env)
	case *hir.Call:
		if err := checkExpr(e.Function, env); err != nil {
			return err
		}
		fn, ok, err := hirtypes.CanonicalizeFunction(e.FunctionType, env)
		if err != nil {
			return err
		}
		if !ok {
			return errors.FunctionExpected(e.Pos)
		}
		if len(fn.Args) != len(e.Args) {
			return errors.WrongArgumentCount(e.Pos)
		}
		for i, a := range e.Args {
			if err := checkExpr(a, env); err != nil {
				return err
			}
			ok, err := hirtypes.Subsumes(a.InferredType(), fn.Args[i], env)
			if err != nil {
				return err
			}
			if !ok {
				return errors.TypesNotMatched(a.Position(), fn.Args[i].Position())
			}
		}
		return nil
	case *hir.Let:
		if e.Declared != nil {
			ok, err := hirtypes.Subsumes(e.Bound.InferredType(), e.Declared, env)
			if err != nil {
				return err
			}
			if !ok {
				return errors.TypesNotMatched(e.Bound.Position(), e.Declared.Position())
			}
		}
		if err := checkExpr(e.Bound, env); err != nil {
			return err
		}
		return checkExpr(e.Body, env)
	case *hir.If:
		if err := checkExpr(e.Cond, env); err != nil {
			return err
		}
		if err := checkExpr(e.Then, env); err != nil {
			return err
		}
		return checkExpr(e.Else, env)
	case *hir.IfList:
		if err := checkExpr(e.List, env); err != nil {
			return err
		}
		if err := checkExpr(e.Then, env); err != nil {
			return err
		}
		return checkExpr(e.Else, env)
	case *hir.IfMap:
		if err := checkExpr(e.Map, env); err != nil {
			return err
		}
		if err := checkExpr(e.Key, env); err != nil {
			return err
		}
		if err := checkExpr(e.Then, env); err != nil {
			return err
		}
		return checkExpr(e.Else, env)
	case *hir.IfType:
		if err := checkExpr(e.Argument, env); err != nil {
			return err
		}
		for _, b := range e.Branches {
			if err := checkExpr(b.Expression, env); err != nil {
				return err
			}
		}
		if e.Else != nil {
			return checkExpr(e.Else.Expression, env)
		}
		return nil
	case *hir.List:
		for _, el := range e.Elements {
			if err := checkExpr(el.Expression, env); err != nil {
				return err
			}
		}
		return nil
	case *hir.ListComprehension:
		for _, b := range e.Branches {
			if err := checkExpr(b.List, env); err != nil {
				return err
			}
		}
		return checkExpr(e.Element, env)
	case *hir.Map:
		for _, el := range e.Elements {
			if err := checkExpr(el.Key, env); err != nil {
				return err
			}
			if err := checkExpr(el.Value, env); err != nil {
				return err
			}
			if err := checkExpr(el.Map, env); err != nil {
				return err
			}
		}
		return nil
	case *hir.RecordConstruction:
		for _, f := range e.Fields {
			if err := checkExpr(f.Expression, env); err != nil {
				return err
			}
		}
		return nil
	case *hir.RecordDeconstruction:
		return checkExpr(e.Record, env)
	case *hir.RecordUpdate:
		if err := checkExpr(e.Record, env); err != nil {
			return err
		}
		for _, f := range e.Fields {
			if err := checkExpr(f.Expression, env); err != nil {
				return err
			}
		}
		return nil
	case *hir.Thunk:
		return checkExpr(e.Expr, env)
	case *hir.TypeCoercion:
		if err := checkExpr(e.Argument, env); err != nil {
			return err
		}
		ok, err := hirtypes.Subsumes(e.From, e.To, env)
		if err != nil {
			return err
		}
		if !ok {
			return errors.TypesNotMatched(e.Argument.Position(), e.To.Position())
		}
		return nil
	case *hir.ArithmeticOperation:
		if err := checkExpr(e.Lhs, env); err != nil {
			return err
		}
		return checkExpr(e.Rhs, env)
	case *hir.BooleanOperation:
		if err := checkExpr(e.Lhs, env); err != nil {
			return err
		}
		return checkExpr(e.Rhs, env)
	case *hir.EqualityOperation:
		if err := checkExpr(e.Lhs, env); err != nil {
			return err
		}
		return checkExpr(e.Rhs, env)
	case *hir.OrderOperation:
		if err := checkExpr(e.Lhs, env); err != nil {
			return err
		}
		return checkExpr(e.Rhs, env)
	case *hir.NotOperation:
		return checkExpr(e.Expression, env)
	case *hir.TryOperation:
		if _, ok := env.ErrorType(); !ok {
			return errors.MissingConfiguration(e.Pos)
		}
		members, err := hirtypes.UnionMembers(e.Expression.InferredType(), env)
		if err != nil {
			return err
		}
		hasError := false
		for _, m := range members {
			if _, isErr := m.(*hirtypes.Error); isErr {
				hasError = true
				break
			}
		}
		if !hasError {
			return errors.InvalidTryOperation(e.Pos)
		}
		return checkExpr(e.Expression, env)
	case *hir.SpawnOperation:
		return checkLambda(e.Function, env)
	default:
		return nil
	}
}
