package validate

import (
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// TypeExistence checks that every Reference reachable from the module's
// type aliases, record field types, and function signatures resolves
// (spec §4.2): either to an alias or to a declared record.
func TypeExistence(m *hir.Module, env *hirtypes.Environment) error {
	for _, def := range m.TypeDefinitions {
		for _, f := range def.Fields {
			if err := checkType(f.Type, env); err != nil {
				return err
			}
		}
	}
	for _, alias := range m.TypeAliases {
		if err := checkType(alias.Type, env); err != nil {
			return err
		}
	}
	for _, d := range m.ForeignDeclarations {
		if err := checkFunctionType(d.Type, env); err != nil {
			return err
		}
	}
	for _, d := range m.FunctionDeclarations {
		if err := checkFunctionType(d.Type, env); err != nil {
			return err
		}
	}
	for _, d := range m.FunctionDefinitions {
		if err := checkLambdaType(d.Lambda, env); err != nil {
			return err
		}
	}
	return nil
}

func checkFunctionType(f *hirtypes.Function, env *hirtypes.Environment) error {
	if f == nil {
		return nil
	}
	for _, a := range f.Args {
		if err := checkType(a, env); err != nil {
			return err
		}
	}
	return checkType(f.Result, env)
}

func checkLambdaType(l *hir.Lambda, env *hirtypes.Environment) error {
	for _, a := range l.Args {
		if err := checkType(a.Type, env); err != nil {
			return err
		}
	}
	return checkType(l.ResultType, env)
}

// checkType recursively verifies every Reference appearing anywhere within
// t resolves, descending into Function/List/Map/Union structure (unlike
// Canonicalize, which is shallow).
func checkType(t hirtypes.Type, env *hirtypes.Environment) error {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *hirtypes.Reference:
		resolved, err := hirtypes.Resolve(v, env)
		if err != nil {
			return err
		}
		return checkType(resolved, env)
	case *hirtypes.Function:
		for _, a := range v.Args {
			if err := checkType(a, env); err != nil {
				return err
			}
		}
		return checkType(v.Result, env)
	case *hirtypes.List:
		return checkType(v.Element, env)
	case *hirtypes.Map:
		if err := checkType(v.Key, env); err != nil {
			return err
		}
		return checkType(v.Value, env)
	case *hirtypes.Union:
		if err := checkType(v.Lhs, env); err != nil {
			return err
		}
		return checkType(v.Rhs, env)
	default:
		return nil
	}
}
