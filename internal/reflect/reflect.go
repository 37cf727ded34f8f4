// Package reflect names the generic-dispatch support functions spec §4.8
// calls "Reflection" (a debug (to-string) and an equal function per type,
// keyed by deterministic type id, plus the names of the default
// catch-alls) and collects the List/Map/Function types that appear in
// variant positions. It emits no functions itself; internal/lower builds
// the per-record dispatch entries from these names. It is grounded
// on the teacher's reflect-style dispatch seen in internal/elaborate's
// equal_type_information handling, generalized to the closed algebra in
// hirtypes.
package reflect

import (
	"fmt"

	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// FunctionName returns the well-known name of the debug or equal dispatch
// function generated for t, keyed by its deterministic type id so that two
// structurally equal types (regardless of how they were constructed) share
// one generated function.
func FunctionName(kind string, t hirtypes.Type, env *hirtypes.Environment) (string, error) {
	id, err := hirtypes.TypeID(t, env)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("hir:reflect:%s:%s", kind, id), nil
}

// GenericTypes collects the distinct List/Map/Function types that appear in
// a variant position across a module (spec §4.7's generic type collection
// step): Union members, type-coercion targets, if-type branch types, and
// list/map literal element/key/value types. Each one needs a reflection
// entry because dispatch on Any must be able to recognize it dynamically.
func GenericTypes(m *hir.Module, env *hirtypes.Environment) ([]hirtypes.Type, error) {
	var out []hirtypes.Type
	seen := map[string]bool{}
	var add func(t hirtypes.Type) error
	add = func(t hirtypes.Type) error {
		if t == nil {
			return nil
		}
		switch t.(type) {
		case *hirtypes.List, *hirtypes.Map, *hirtypes.Function:
		case *hirtypes.Union:
			members, err := hirtypes.UnionMembers(t, env)
			if err != nil {
				return err
			}
			for _, member := range members {
				if err := add(member); err != nil {
					return err
				}
			}
			return nil
		default:
			return nil
		}
		id, err := hirtypes.TypeID(t, env)
		if err != nil {
			return err
		}
		if seen[id] {
			return nil
		}
		seen[id] = true
		out = append(out, t)
		return nil
	}

	var walkErr error
	hir.VisitModule(m, func(e hir.Expression) {
		if walkErr != nil {
			return
		}
		switch v := e.(type) {
		case *hir.TypeCoercion:
			walkErr = add(v.To)
		case *hir.IfType:
			for _, b := range v.Branches {
				if err := add(b.Type); err != nil {
					walkErr = err
					return
				}
			}
			if v.Else != nil {
				walkErr = add(v.Else.Type)
			}
		case *hir.List:
			walkErr = add(v.ElementType)
		case *hir.Map:
			if err := add(v.KeyType); err != nil {
				walkErr = err
				return
			}
			walkErr = add(v.ValueType)
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// DebugFunctionName/EqualFunctionName are convenience wrappers over
// FunctionName for the two reflection kinds the spec names.
func DebugFunctionName(t hirtypes.Type, env *hirtypes.Environment) (string, error) {
	return FunctionName("debug", t, env)
}

func EqualFunctionName(t hirtypes.Type, env *hirtypes.Environment) (string, error) {
	return FunctionName("equal", t, env)
}

// DefaultDebugFunctionName/DefaultEqualFunctionName name the catch-all
// dispatch targets for a dynamic value that no concrete entry matches. No
// function of either name is emitted by this module.
const (
	DefaultDebugFunctionName = "hir:reflect:debug:default"
	DefaultEqualFunctionName = "hir:reflect:equal:default"
)
