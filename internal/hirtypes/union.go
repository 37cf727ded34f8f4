package hirtypes

// UnionMembers implements union_type_member_calculator (spec §3.2 rule 4,
// §4.1): the flat set of leaf types reachable through unions, references
// and aliases, excluding Union itself. Order is first-seen (deterministic,
// not sorted) so that two independently-built unions over the same set
// produce members in whatever order their trees visit them; callers that
// need a canonical order (TypeID) sort explicitly.
func UnionMembers(t Type, env *Environment) ([]Type, error) {
	var out []Type
	if err := collectMembers(t, env, &out, map[string]bool{}); err != nil {
		return nil, err
	}
	return out, nil
}

func collectMembers(t Type, env *Environment, out *[]Type, resolving map[string]bool) error {
	switch v := t.(type) {
	case *Union:
		if err := collectMembers(v.Lhs, env, out, resolving); err != nil {
			return err
		}
		return collectMembers(v.Rhs, env, out, resolving)
	case *Reference:
		if resolving[v.Name] {
			return nil
		}
		resolved, err := Resolve(v, env)
		if err != nil {
			return err
		}
		resolving[v.Name] = true
		return collectMembers(resolved, env, out, resolving)
	default:
		for _, existing := range *out {
			if Equal(existing, v) {
				return nil
			}
		}
		*out = append(*out, v)
		return nil
	}
}

// CreateUnion implements union_type_creator: folds a non-empty member set
// right-to-left into a binary Union tree. A single-member set returns that
// member unwrapped (not a Union), matching the canonical-form rule that a
// canonical Union always has at least two members.
func CreateUnion(members []Type, pos Position) (Type, bool) {
	if len(members) == 0 {
		return nil, false
	}
	acc := members[len(members)-1]
	for i := len(members) - 2; i >= 0; i-- {
		acc = &Union{Pos: pos, Lhs: members[i], Rhs: acc}
	}
	return acc, true
}

func buildCanonicalUnion(members []Type, pos Position) Type {
	// Any ∪ T = Any for any T (spec §3.2 rule 1).
	for _, m := range members {
		if _, ok := m.(*Any); ok {
			return &Any{Pos: pos}
		}
	}
	if len(members) == 1 {
		return members[0]
	}
	u, _ := CreateUnion(members, pos)
	return u
}
