package hirtypes

import "github.com/sunholo/corehir/internal/errors"

// Resolve chases a Reference through aliases (never through records) to a
// non-reference type, per spec §4.1. If the chain bottoms out at a name
// that is not an alias but is a declared record, the reference denotes that
// record. A name that is neither yields UnresolvedReference; a cycle among
// aliases yields CyclicReference.
func Resolve(t Type, env *Environment) (Type, error) {
	ref, ok := t.(*Reference)
	if !ok {
		return t, nil
	}
	return resolveChain(ref, env, map[string]bool{})
}

func resolveChain(ref *Reference, env *Environment, visiting map[string]bool) (Type, error) {
	if visiting[ref.Name] {
		return nil, errors.CyclicReference(ref.Name, ref.Pos)
	}
	if target, ok := env.Alias(ref.Name); ok {
		visiting[ref.Name] = true
		if nextRef, ok := target.(*Reference); ok {
			return resolveChain(nextRef, env, visiting)
		}
		return target, nil
	}
	if env.HasRecord(ref.Name) {
		return &Record{Pos: ref.Pos, Name: ref.Name}, nil
	}
	return nil, errors.UnresolvedReference(ref.Name, ref.Pos)
}
