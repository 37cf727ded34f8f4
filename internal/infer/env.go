// Package infer implements type inference (spec §4.3) and the standalone
// type checker (spec §4.4) that re-verifies subsumption after inference and
// again after coercion.
package infer

import "github.com/sunholo/corehir/internal/hirtypes"

// varEnv is the persistent name→Type environment seeded by function
// signatures and extended by Let/IfType/IfList/IfMap/lambda arguments
// (spec §4.3). Extension copies the map rather than mutating the parent so
// that sibling branches (e.g. an If's Then and Else) never see each other's
// bindings.
type varEnv map[string]hirtypes.Type

func (e varEnv) with(name string, t hirtypes.Type) varEnv {
	out := make(varEnv, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[name] = t
	return out
}
