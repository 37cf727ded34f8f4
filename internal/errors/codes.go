// Package errors provides centralized, AI-friendly structured diagnostics
// for every pass of the core pipeline. Every pass returns a *Diagnostic
// instead of panicking; diagnostics carry a phase-coded string, a Kind
// drawn from the taxonomy in spec §7, and a source Position.
package errors

// Error code constants grouped by phase, following the same taxonomy shape
// the teacher repository uses in internal/errors/codes.go (PAR###, MOD###,
// TC### ...). This module's phases run later in the pipeline, so the
// prefixes pick up where a surface-syntax front end would leave off.
const (
	// Type algebra (TY###)
	TY001 = "TY001" // unresolved reference
	TY002 = "TY002" // cyclic reference
	TY003 = "TY003" // type not comparable
	TY004 = "TY004" // invalid variant type

	// Validators (VAL###)
	VAL001 = "VAL001" // duplicate name
	VAL002 = "VAL002" // unknown record field
	VAL003 = "VAL003" // missing record field
	VAL004 = "VAL004" // record field private
	VAL005 = "VAL005" // invalid try operation placement
	VAL006 = "VAL006" // try operation inside list literal

	// Inference (INF###)
	INF001 = "INF001" // types not matched
	INF002 = "INF002" // type not inferred
	INF003 = "INF003" // wrong argument count
	INF004 = "INF004" // function expected
	INF005 = "INF005" // list expected
	INF006 = "INF006" // map expected
	INF007 = "INF007" // record expected
	INF008 = "INF008" // variable not found

	// Coercion (COE###)
	COE001 = "COE001" // coercion target not a supertype

	// Synthesis (SYN###)
	SYN001 = "SYN001" // record not comparable for equality/hash synthesis

	// Desugaring (DSG###)
	DSG001 = "DSG001" // record not comparable at equality desugaring site
	DSG002 = "DSG002" // missing type configuration

	// MIR lowering (LOW###)
	LOW001 = "LOW001" // MIR type mismatch

	// Driver (DRV###)
	DRV001 = "DRV001" // cancelled by driver
)
