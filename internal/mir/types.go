// Package mir implements the lowering target described in spec §4.8/§6.2:
// closures with explicit environments, tagged-variant case analysis, and
// record construction with explicit field indexing. It is grounded on the
// node set exercised by original_source's lib/mir analysis passes
// (analysis/normalization/alias_removal.rs, analysis/lambda_lifting/*)
// rather than being invented from scratch.
package mir

import "github.com/sunholo/corehir/internal/hirtypes"

// Type is a MIR-level type annotation: either a concrete hirtypes.Type
// carried over unchanged from HIR (Boolean, None, Number, String, Record,
// Function — everything that survives monomorphization), or Variant, the
// boxed/dynamic representation reflection dispatch and case analysis work
// against. hirtypes.Type itself cannot express Variant (it has no back-end
// concept), so MIR needs this thin wrapper rather than reusing hirtypes.Type
// directly everywhere.
type Type interface {
	String() string
	isMirType()
}

// Concrete wraps a hirtypes.Type carried over from HIR. Container types
// (List, Map, Function) are wrapped as they are, not replaced by the
// generated wrapper TypeDefinitions.
type Concrete struct{ Inner hirtypes.Type }

func (c *Concrete) String() string { return c.Inner.String() }
func (*Concrete) isMirType()       {}

// AsType wraps t as a MIR Concrete type, or returns nil if t is nil.
func AsType(t hirtypes.Type) Type {
	if t == nil {
		return nil
	}
	return &Concrete{Inner: t}
}

// VariantType is the boxed runtime representation used for reflection
// dispatch arguments/results and Case scrutinees (spec §6.2's
// "tagged-variant case analysis").
type VariantType struct{}

func (*VariantType) String() string { return "variant" }
func (*VariantType) isMirType()     {}

// NamedType refers to a type by name alone, rather than wrapping a
// hirtypes.Type directly; no TypeDefinition of that name is emitted in the
// module. internal/lower uses this for the runtime list/map type names of
// the type configuration and for the synthetic tags it names when lowering
// IfList/IfMap
// (spec §4.8 does not name a decomposition helper for these in the type
// configuration, so their tag encoding is left to the back end; this
// module only needs a stable name for the Case alternative to carry).
type NamedType struct{ Name string }

func (n *NamedType) String() string { return n.Name }
func (*NamedType) isMirType()       {}
