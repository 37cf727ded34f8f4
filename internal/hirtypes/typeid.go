package hirtypes

import (
	"strings"

	"github.com/sunholo/corehir/internal/typeid"
)

// TypeID implements type_id_calculator (spec §4.1): a deterministic short
// string derived from the canonical form of t. Two types equal under
// structural equality produce the same string; two non-equal types produce
// distinct strings. It is the suffix used to name generated runtime helpers
// (hir:reflect:debug:<id>, <record>.$equal).
//
// Unlike Canonicalize, TypeID recurses fully into Function/List/Map
// argument positions, since it must be a complete, order-independent
// fingerprint: two unions built from the same member set in a different
// construction order must still hash identically, so the Union case sorts
// member ids rather than relying on Canonicalize's first-seen ordering.
func TypeID(t Type, env *Environment) (string, error) {
	c, err := Canonicalize(t, env)
	if err != nil {
		return "", err
	}
	switch v := c.(type) {
	case *Boolean:
		return "bool", nil
	case *None:
		return "none", nil
	case *Number:
		return "num", nil
	case *String:
		return "str", nil
	case *Any:
		return "any", nil
	case *Error:
		return "err", nil
	case *Record:
		return "rec:" + v.Name, nil
	case *Function:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			id, err := TypeID(a, env)
			if err != nil {
				return "", err
			}
			args[i] = id
		}
		result, err := TypeID(v.Result, env)
		if err != nil {
			return "", err
		}
		return "fn(" + strings.Join(args, ",") + ")->" + result, nil
	case *List:
		elem, err := TypeID(v.Element, env)
		if err != nil {
			return "", err
		}
		return "[" + elem + "]", nil
	case *Map:
		key, err := TypeID(v.Key, env)
		if err != nil {
			return "", err
		}
		val, err := TypeID(v.Value, env)
		if err != nil {
			return "", err
		}
		return "{" + key + ":" + val + "}", nil
	case *Union:
		members, err := UnionMembers(v, env)
		if err != nil {
			return "", err
		}
		ids := make([]string, len(members))
		for i, m := range members {
			id, err := TypeID(m, env)
			if err != nil {
				return "", err
			}
			ids[i] = id
		}
		typeid.SortStrings(ids)
		return "<" + strings.Join(ids, "|") + ">", nil
	default:
		return "", nil
	}
}
