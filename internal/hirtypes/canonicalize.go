package hirtypes

// Canonicalize resolves references transitively, flattens nested unions,
// removes structural duplicates and collapses any union containing Any into
// Any (spec §3.2 rules 1-2, §4.1). It is total for well-formed input and
// referentially transparent: Canonicalize(Canonicalize(t)) == Canonicalize(t).
func Canonicalize(t Type, env *Environment) (Type, error) {
	switch v := t.(type) {
	case *Reference:
		resolved, err := Resolve(v, env)
		if err != nil {
			return nil, err
		}
		return Canonicalize(resolved, env)
	case *Union:
		members, err := UnionMembers(v, env)
		if err != nil {
			return nil, err
		}
		return buildCanonicalUnion(members, v.Pos), nil
	default:
		// Function/List/Map/Record/Error/atomic canonicalization is shallow:
		// the canonicalizer does not recurse into argument positions per
		// spec §4.1; consumers (TypeID, coercion, desugaring) recurse as
		// needed.
		return t, nil
	}
}

// CanonicalizeFunction canonicalizes t and returns it as a *Function,
// reporting false if the resolved head is not a function (spec §4.1).
func CanonicalizeFunction(t Type, env *Environment) (*Function, bool, error) {
	c, err := Canonicalize(t, env)
	if err != nil {
		return nil, false, err
	}
	f, ok := c.(*Function)
	return f, ok, nil
}

// CanonicalizeList canonicalizes t and returns it as a *List, reporting
// false if the resolved head is not a list.
func CanonicalizeList(t Type, env *Environment) (*List, bool, error) {
	c, err := Canonicalize(t, env)
	if err != nil {
		return nil, false, err
	}
	l, ok := c.(*List)
	return l, ok, nil
}

// CanonicalizeMap canonicalizes t and returns it as a *Map, reporting false
// if the resolved head is not a map.
func CanonicalizeMap(t Type, env *Environment) (*Map, bool, error) {
	c, err := Canonicalize(t, env)
	if err != nil {
		return nil, false, err
	}
	m, ok := c.(*Map)
	return m, ok, nil
}
