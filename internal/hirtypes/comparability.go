package hirtypes

import "github.com/sunholo/corehir/internal/errors"

// Comparable reports whether equality/hashing can be generated for t (spec
// §3.2, §4.1): true for Boolean, None, Number, String; Record whose every
// field is comparable; List/Map whose element/key/value is comparable;
// Union whose every member is comparable. False for Any, Error, Function.
func Comparable(t Type, env *Environment) (bool, error) {
	resolved, err := Canonicalize(t, env)
	if err != nil {
		return false, err
	}
	switch v := resolved.(type) {
	case *Boolean, *None, *Number, *String:
		return true, nil
	case *Record:
		def, ok := env.Record(v.Name)
		if !ok {
			return false, errors.UnresolvedReference(v.Name, v.Pos)
		}
		for _, f := range def.Fields {
			ok, err := Comparable(f.Type, env)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case *List:
		return Comparable(v.Element, env)
	case *Map:
		keyOK, err := Comparable(v.Key, env)
		if err != nil || !keyOK {
			return false, err
		}
		return Comparable(v.Value, env)
	case *Union:
		members, err := UnionMembers(v, env)
		if err != nil {
			return false, err
		}
		for _, m := range members {
			ok, err := Comparable(m, env)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, nil
	}
}

// CheckComparable is Comparable plus the TypeNotComparable diagnostic when
// it fails, for call sites that want to propagate the error immediately
// rather than branch on the bool (spec §4.1).
func CheckComparable(t Type, env *Environment) error {
	ok, err := Comparable(t, env)
	if err != nil {
		return err
	}
	if !ok {
		return errors.TypeNotComparable(t.Position(), t.String())
	}
	return nil
}
