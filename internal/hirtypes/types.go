// Package hirtypes implements the type algebra of the core: representation,
// canonicalization, resolution, equality, subsumption, comparability,
// union-member enumeration, record-field resolution and type-id hashing
// (spec §3.2 and §4.1). It is grounded on the Type sum in the teacher's
// internal/types/types.go, generalized from AILANG's Hindley-Milner algebra
// to the closed, non-generic nominal/union algebra this language uses.
package hirtypes

import (
	"fmt"

	"github.com/sunholo/corehir/internal/position"
)

// Type is a closed tagged sum (spec §3.2). Implementations are pointer
// types, so == compares identity; structural comparison always goes
// through Equal, never ==.
type Type interface {
	fmt.Stringer
	Position() position.Position
	isType()
}

// Position aliases position.Position for brevity within this package.
type Position = position.Position

// Boolean, None, Number, String and Any are the atomic/top types.
type Boolean struct{ Pos position.Position }
type None struct{ Pos position.Position }
type Number struct{ Pos position.Position }
type String struct{ Pos position.Position }
type Any struct{ Pos position.Position }

// Error is the built-in error variant. Source is an optional payload type
// describing what produced the error (e.g. the expression's operand type at
// the point a `try` is rewritten); it is metadata only and never affects
// Equal, Subsumes or comparability (Error is always mutually equal to
// Error, per §3.2's treatment of it as a singleton-like built-in variant).
type Error struct {
	Pos    position.Position
	Source Type
}

// Record is a nominal reference to a type definition by name.
type Record struct {
	Pos  position.Position
	Name string
}

// Reference is a late-bound reference to a type alias or a record, resolved
// by Resolve.
type Reference struct {
	Pos  position.Position
	Name string
}

// Function is an arrow type.
type Function struct {
	Pos    position.Position
	Args   []Type
	Result Type
}

// List is a homogeneous list type.
type List struct {
	Pos     position.Position
	Element Type
}

// Map is a homogeneous map type.
type Map struct {
	Pos   position.Position
	Key   Type
	Value Type
}

// Union is a binary union tree; semantically a set (spec §3.2 rule 2).
type Union struct {
	Pos position.Position
	Lhs Type
	Rhs Type
}

func (t *Boolean) isType()  {}
func (t *None) isType()     {}
func (t *Number) isType()   {}
func (t *String) isType()   {}
func (t *Any) isType()      {}
func (t *Error) isType()    {}
func (t *Record) isType()   {}
func (t *Reference) isType() {}
func (t *Function) isType() {}
func (t *List) isType()     {}
func (t *Map) isType()      {}
func (t *Union) isType()    {}

func (t *Boolean) Position() position.Position   { return t.Pos }
func (t *None) Position() position.Position      { return t.Pos }
func (t *Number) Position() position.Position    { return t.Pos }
func (t *String) Position() position.Position    { return t.Pos }
func (t *Any) Position() position.Position       { return t.Pos }
func (t *Error) Position() position.Position     { return t.Pos }
func (t *Record) Position() position.Position    { return t.Pos }
func (t *Reference) Position() position.Position { return t.Pos }
func (t *Function) Position() position.Position  { return t.Pos }
func (t *List) Position() position.Position      { return t.Pos }
func (t *Map) Position() position.Position       { return t.Pos }
func (t *Union) Position() position.Position     { return t.Pos }

func (t *Boolean) String() string { return "boolean" }
func (t *None) String() string    { return "none" }
func (t *Number) String() string  { return "number" }
func (t *String) String() string  { return "string" }
func (t *Any) String() string     { return "any" }
func (t *Error) String() string   { return "error" }
func (t *Record) String() string  { return t.Name }
func (t *Reference) String() string {
	return t.Name
}
func (t *Function) String() string {
	s := "\\("
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ") " + t.Result.String()
}
func (t *List) String() string { return "[" + t.Element.String() + "]" }
func (t *Map) String() string  { return "{" + t.Key.String() + ": " + t.Value.String() + "}" }
func (t *Union) String() string {
	return t.Lhs.String() + " | " + t.Rhs.String()
}

// Field is a single record field: a name and its declared type.
type Field struct {
	Name string
	Type Type
}

// RecordDefinition is the (name, original_name, fields, open?, public?,
// external?, position) tuple of spec §3.3.
type RecordDefinition struct {
	Pos          position.Position
	Name         string
	OriginalName string
	Fields       []Field
	Declared     bool // declared `open` keyword present in source
	Public       bool
	External     bool
}

// Open reports whether the record may be constructed, deconstructed or
// updated by expressions outside its defining module (spec §3.3): a record
// is open if it is not external, or if it is external and both public and
// explicitly declared open.
func (d *RecordDefinition) Open() bool {
	if !d.External {
		return true
	}
	return d.Public && d.Declared
}

// FieldType looks up a field by name, reporting whether it exists.
func (d *RecordDefinition) FieldType(name string) (Type, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}
