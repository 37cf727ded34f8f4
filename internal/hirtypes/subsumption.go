package hirtypes

// Subsumes implements `A <: B` (spec §3.2, §4.1): every member of
// members(A) must be structurally equal (modulo position) to some member
// of members(B), where function subsumption is invariant (Equal already
// treats function argument/result equality invariantly, so the generic
// member search is reused unchanged for functions).
//
// Two asymmetric carve-outs apply before the generic algorithm, per §4.1:
//   - Any on the right subsumes every non-Error type.
//   - Error on the right subsumes only types whose member set consists
//     entirely of Errors.
func Subsumes(lower, upper Type, env *Environment) (bool, error) {
	lowerMembers, err := UnionMembers(lower, env)
	if err != nil {
		return false, err
	}
	canonUpper, err := Canonicalize(upper, env)
	if err != nil {
		return false, err
	}

	if _, ok := canonUpper.(*Any); ok {
		for _, m := range lowerMembers {
			if _, isErr := m.(*Error); isErr {
				return false, nil
			}
		}
		return true, nil
	}
	if _, ok := canonUpper.(*Error); ok {
		for _, m := range lowerMembers {
			if _, isErr := m.(*Error); !isErr {
				return false, nil
			}
		}
		return true, nil
	}

	upperMembers, err := UnionMembers(canonUpper, env)
	if err != nil {
		return false, err
	}
	for _, lm := range lowerMembers {
		found := false
		for _, um := range upperMembers {
			if Equal(lm, um) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}
