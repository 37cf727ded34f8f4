// Package position defines the opaque source-position handle threaded
// through every IR node. Positions participate in node identity but never
// in structural equality: every tree comparison in this module must use
// Equal (or ignore Position entirely) rather than reflect.DeepEqual.
package position

import (
	"fmt"

	"github.com/google/uuid"
)

// Position is produced by the external parser for AST nodes (path + span)
// and propagated unchanged through HIR and MIR. Passes that synthesize new
// nodes (equality/hash synthesis, desugaring) stamp a Synthetic position
// instead of fabricating a fake file/line.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int

	// Synthetic identifies positions minted by a compiler pass rather than
	// the parser. ID is a stable handle so synthesized nodes still have an
	// equality-transparent identity per §3.1, even though they have no
	// source span.
	Synthetic bool
	ID        string
}

func (p Position) String() string {
	if p.Synthetic {
		return fmt.Sprintf("<generated:%s>", p.ID)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// New constructs a position from parser-supplied coordinates.
func New(file string, line, column, offset int) Position {
	return Position{File: file, Line: line, Column: column, Offset: offset}
}

// Synthesize mints a position for a node that has no source origin, such as
// a generated $equal/$hash function or a desugared dispatch branch.
func Synthesize() Position {
	return Position{Synthetic: true, ID: uuid.NewString()}
}

// SynthesizeFrom mints a synthetic position derived from an originating
// position, keeping provenance for diagnostics while marking the node as
// compiler-generated.
func SynthesizeFrom(origin Position) Position {
	return Position{Synthetic: true, ID: uuid.NewString(), File: origin.File, Line: origin.Line, Column: origin.Column}
}

// Fake returns a deterministic, non-random position for use in tests that
// need a stable value rather than a UUID (table-driven tests comparing
// entire trees via go-cmp would otherwise never match two independently
// synthesized positions, which is fine since comparisons ignore Position,
// but Fake keeps fixtures readable).
func Fake() Position {
	return Position{File: "fake", Line: 1, Column: 1}
}
