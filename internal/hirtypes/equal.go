package hirtypes

// Equal is structural, position-insensitive equality (spec §4.1). It does
// not resolve references or canonicalize unions — callers compare already
// resolved/canonical types, which is how every use site in this module
// reaches it (Subsumes operates over union_type_member_calculator results,
// canonicalize's dedup step operates over already-flattened members).
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case *Boolean:
		_, ok := b.(*Boolean)
		return ok
	case *None:
		_, ok := b.(*None)
		return ok
	case *Number:
		_, ok := b.(*Number)
		return ok
	case *String:
		_, ok := b.(*String)
		return ok
	case *Any:
		_, ok := b.(*Any)
		return ok
	case *Error:
		_, ok := b.(*Error)
		return ok
	case *Record:
		bv, ok := b.(*Record)
		return ok && av.Name == bv.Name
	case *Reference:
		bv, ok := b.(*Reference)
		return ok && av.Name == bv.Name
	case *Function:
		bv, ok := b.(*Function)
		if !ok || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return Equal(av.Result, bv.Result)
	case *List:
		bv, ok := b.(*List)
		return ok && Equal(av.Element, bv.Element)
	case *Map:
		bv, ok := b.(*Map)
		return ok && Equal(av.Key, bv.Key) && Equal(av.Value, bv.Value)
	case *Union:
		bv, ok := b.(*Union)
		if !ok {
			return false
		}
		return unionMembersEqual(flattenUnion(av), flattenUnion(bv))
	default:
		return false
	}
}

// flattenUnion collects a Union's members by descending through nested
// Lhs/Rhs without resolving references, matching Equal's no-env contract
// above — a canonical union's members are already flat, but Equal must not
// assume its argument went through Canonicalize first.
func flattenUnion(u *Union) []Type {
	var members []Type
	var walk func(Type)
	walk = func(t Type) {
		if nested, ok := t.(*Union); ok {
			walk(nested.Lhs)
			walk(nested.Rhs)
			return
		}
		members = append(members, t)
	}
	walk(u)
	return members
}

// unionMembersEqual compares two member lists as sets: a Union is
// semantically a set (spec §3.2), so member order and construction shape
// must not affect equality (spec §8 property 5, type_id(A) == type_id(B)
// iff equal(A, B)).
func unionMembersEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if Equal(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
