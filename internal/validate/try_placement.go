package validate

import (
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// TryPlacement validates every `try` operation (spec §4.2): it must appear
// inside a function (or thunk) whose result type subsumes the configured
// error type, and it must never appear as a list-literal element (list
// elements are evaluated lazily, so a `try` there would bypass the
// enclosing continuation). Grounded directly on
// original_source/lib/hir-mir/src/try_operation_validator.rs, which threads
// an Option<&Type> "current expected result type" downward and clears it to
// None exactly when descending into a list/list-comprehension element.
func TryPlacement(m *hir.Module, env *hirtypes.Environment) error {
	for _, def := range m.FunctionDefinitions {
		if err := validateLambda(def.Lambda, env); err != nil {
			return err
		}
	}
	return nil
}

func validateLambda(l *hir.Lambda, env *hirtypes.Environment) error {
	return validateExpr(l.Body, l.ResultType, env)
}

// validateExpr walks expr; resultType is nil exactly when inside a list
// literal or list-comprehension element, per the original validator.
func validateExpr(expr hir.Expression, resultType hirtypes.Type, env *hirtypes.Environment) error {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *hir.Call:
		if err := validateExpr(e.Function, resultType, env); err != nil {
			return err
		}
		for _, a := range e.Args {
			if err := validateExpr(a, resultType, env); err != nil {
				return err
			}
		}
	case *hir.If:
		if err := validateExpr(e.Cond, resultType, env); err != nil {
			return err
		}
		if err := validateExpr(e.Then, resultType, env); err != nil {
			return err
		}
		return validateExpr(e.Else, resultType, env)
	case *hir.IfList:
		if err := validateExpr(e.List, resultType, env); err != nil {
			return err
		}
		if err := validateExpr(e.Then, resultType, env); err != nil {
			return err
		}
		return validateExpr(e.Else, resultType, env)
	case *hir.IfMap:
		if err := validateExpr(e.Map, resultType, env); err != nil {
			return err
		}
		if err := validateExpr(e.Key, resultType, env); err != nil {
			return err
		}
		if err := validateExpr(e.Then, resultType, env); err != nil {
			return err
		}
		return validateExpr(e.Else, resultType, env)
	case *hir.IfType:
		if err := validateExpr(e.Argument, resultType, env); err != nil {
			return err
		}
		for _, b := range e.Branches {
			if err := validateExpr(b.Expression, resultType, env); err != nil {
				return err
			}
		}
		if e.Else != nil {
			return validateExpr(e.Else.Expression, resultType, env)
		}
	case *hir.TypeCoercion:
		return validateExpr(e.Argument, resultType, env)
	case *hir.Lambda:
		return validateLambda(e, env)
	case *hir.Let:
		if err := validateExpr(e.Bound, resultType, env); err != nil {
			return err
		}
		return validateExpr(e.Body, resultType, env)
	case *hir.List:
		for _, el := range e.Elements {
			if err := validateExpr(el.Expression, nil, env); err != nil {
				return err
			}
		}
	case *hir.ListComprehension:
		if err := validateExpr(e.Element, nil, env); err != nil {
			return err
		}
		for _, b := range e.Branches {
			if err := validateExpr(b.List, resultType, env); err != nil {
				return err
			}
		}
	case *hir.ArithmeticOperation:
		if err := validateExpr(e.Lhs, resultType, env); err != nil {
			return err
		}
		return validateExpr(e.Rhs, resultType, env)
	case *hir.BooleanOperation:
		if err := validateExpr(e.Lhs, resultType, env); err != nil {
			return err
		}
		return validateExpr(e.Rhs, resultType, env)
	case *hir.EqualityOperation:
		if err := validateExpr(e.Lhs, resultType, env); err != nil {
			return err
		}
		return validateExpr(e.Rhs, resultType, env)
	case *hir.OrderOperation:
		if err := validateExpr(e.Lhs, resultType, env); err != nil {
			return err
		}
		return validateExpr(e.Rhs, resultType, env)
	case *hir.NotOperation:
		return validateExpr(e.Expression, resultType, env)
	case *hir.SpawnOperation:
		return validateLambda(e.Function, env)
	case *hir.TryOperation:
		if resultType == nil {
			return errors.TryOperationInList(e.Pos)
		}
		errType, ok := env.ErrorType()
		if !ok {
			return errors.MissingConfiguration(e.Pos)
		}
		ok2, err := hirtypes.Subsumes(errType, resultType, env)
		if err != nil {
			return err
		}
		if !ok2 {
			return errors.InvalidTryOperation(e.Pos)
		}
		return validateExpr(e.Expression, resultType, env)
	case *hir.RecordConstruction:
		for _, f := range e.Fields {
			if err := validateExpr(f.Expression, resultType, env); err != nil {
				return err
			}
		}
	case *hir.RecordDeconstruction:
		return validateExpr(e.Record, resultType, env)
	case *hir.RecordUpdate:
		if err := validateExpr(e.Record, resultType, env); err != nil {
			return err
		}
		for _, f := range e.Fields {
			if err := validateExpr(f.Expression, resultType, env); err != nil {
				return err
			}
		}
	case *hir.Thunk:
		return validateExpr(e.Expr, e.BodyType, env)
	case *hir.Map:
		for _, el := range e.Elements {
			switch el.Kind {
			case hir.MapElementSingle:
				if err := validateExpr(el.Key, resultType, env); err != nil {
					return err
				}
				if err := validateExpr(el.Value, resultType, env); err != nil {
					return err
				}
			case hir.MapElementMultiple:
				if err := validateExpr(el.Map, resultType, env); err != nil {
					return err
				}
			case hir.MapElementRemoval:
				if err := validateExpr(el.Key, resultType, env); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
