package errors

import (
	"fmt"

	"github.com/sunholo/corehir/internal/position"
)

// Kind is the closed taxonomy of §7 of the specification. Every pass
// returns one of these rather than a bare error string or a panic.
type Kind string

const (
	KindDuplicateName        Kind = "DuplicateName"
	KindUnresolvedReference  Kind = "UnresolvedReference"
	KindTypesNotMatched      Kind = "TypesNotMatched"
	KindTypeNotInferred      Kind = "TypeNotInferred"
	KindWrongArgumentCount   Kind = "WrongArgumentCount"
	KindFunctionExpected     Kind = "FunctionExpected"
	KindListExpected         Kind = "ListExpected"
	KindMapExpected          Kind = "MapExpected"
	KindRecordExpected       Kind = "RecordExpected"
	KindUnknownRecordField   Kind = "UnknownRecordField"
	KindMissingRecordField   Kind = "MissingRecordField"
	KindRecordFieldPrivate   Kind = "RecordFieldPrivate"
	KindTypeNotComparable    Kind = "TypeNotComparable"
	KindInvalidTryOperation  Kind = "InvalidTryOperation"
	KindTryOperationInList   Kind = "TryOperationInList"
	KindVariableNotFound     Kind = "VariableNotFound"
	KindCyclicReference      Kind = "CyclicReference"
	KindInvalidVariantType   Kind = "InvalidVariantType"
	KindMissingConfiguration Kind = "MissingConfiguration"
	KindCancelledByDriver    Kind = "CancelledByDriver"
	// KindRecordNotComparable is the supplemented diagnostic from
	// original_source/lib/hir-mir/src/transformation/equal_operation/operation.rs:
	// distinct from KindTypeNotComparable because it is raised lazily, at
	// equality-desugaring time, against a record type specifically.
	KindRecordNotComparable Kind = "RecordNotComparable"
)

// Diagnostic is a structured compiler error. Every field beyond Kind and
// Position is optional and only populated when the Kind calls for it.
type Diagnostic struct {
	Code      string
	Kind      Kind
	Position  position.Position
	Position2 position.Position // second position, for TypesNotMatched
	Name      string            // identifier involved, for name-carrying kinds
	TypeDesc  string            // rendered Type.String(), for type-carrying kinds
	Message   string
}

func (d *Diagnostic) Error() string {
	if d.Message != "" {
		return fmt.Sprintf("%s: %s: %s", d.Code, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s at %s", d.Code, d.Kind, d.Position)
}

func DuplicateName(name string, pos position.Position) *Diagnostic {
	return &Diagnostic{Code: VAL001, Kind: KindDuplicateName, Position: pos, Name: name,
		Message: fmt.Sprintf("duplicate declaration of %q", name)}
}

func UnresolvedReference(name string, pos position.Position) *Diagnostic {
	return &Diagnostic{Code: TY001, Kind: KindUnresolvedReference, Position: pos, Name: name,
		Message: fmt.Sprintf("unresolved reference to type %q", name)}
}

func TypesNotMatched(lowerPos, upperPos position.Position) *Diagnostic {
	return &Diagnostic{Code: INF001, Kind: KindTypesNotMatched, Position: lowerPos, Position2: upperPos,
		Message: "type does not subsume the expected type"}
}

func TypeNotInferred(pos position.Position) *Diagnostic {
	return &Diagnostic{Code: INF002, Kind: KindTypeNotInferred, Position: pos,
		Message: "inference slot was not populated"}
}

func WrongArgumentCount(pos position.Position) *Diagnostic {
	return &Diagnostic{Code: INF003, Kind: KindWrongArgumentCount, Position: pos,
		Message: "call argument count does not match function arity"}
}

func FunctionExpected(pos position.Position) *Diagnostic {
	return &Diagnostic{Code: INF004, Kind: KindFunctionExpected, Position: pos, Message: "expected a function type"}
}

func ListExpected(pos position.Position) *Diagnostic {
	return &Diagnostic{Code: INF005, Kind: KindListExpected, Position: pos, Message: "expected a list type"}
}

func MapExpected(pos position.Position) *Diagnostic {
	return &Diagnostic{Code: INF006, Kind: KindMapExpected, Position: pos, Message: "expected a map type"}
}

func RecordExpected(pos position.Position) *Diagnostic {
	return &Diagnostic{Code: INF007, Kind: KindRecordExpected, Position: pos, Message: "expected a record type"}
}

func UnknownRecordField(name string, pos position.Position) *Diagnostic {
	return &Diagnostic{Code: VAL002, Kind: KindUnknownRecordField, Position: pos, Name: name,
		Message: fmt.Sprintf("unknown record field %q", name)}
}

func MissingRecordField(name string, pos position.Position) *Diagnostic {
	return &Diagnostic{Code: VAL003, Kind: KindMissingRecordField, Position: pos, Name: name,
		Message: fmt.Sprintf("missing record field %q", name)}
}

func RecordFieldPrivate(name string, pos position.Position) *Diagnostic {
	return &Diagnostic{Code: VAL004, Kind: KindRecordFieldPrivate, Position: pos, Name: name,
		Message: fmt.Sprintf("field %q is not visible outside its defining module", name)}
}

func TypeNotComparable(pos position.Position, typeDesc string) *Diagnostic {
	return &Diagnostic{Code: TY003, Kind: KindTypeNotComparable, Position: pos, TypeDesc: typeDesc,
		Message: fmt.Sprintf("type %s is not comparable", typeDesc)}
}

func RecordNotComparable(pos position.Position, typeDesc string) *Diagnostic {
	return &Diagnostic{Code: DSG001, Kind: KindRecordNotComparable, Position: pos, TypeDesc: typeDesc,
		Message: fmt.Sprintf("record type %s is not comparable", typeDesc)}
}

func InvalidTryOperation(pos position.Position) *Diagnostic {
	return &Diagnostic{Code: VAL005, Kind: KindInvalidTryOperation, Position: pos,
		Message: "try is only valid in a function whose result subsumes the configured error type"}
}

func TryOperationInList(pos position.Position) *Diagnostic {
	return &Diagnostic{Code: VAL006, Kind: KindTryOperationInList, Position: pos,
		Message: "try cannot appear as a list element: list evaluation is lazy and would bypass the continuation"}
}

func VariableNotFound(name string, pos position.Position) *Diagnostic {
	return &Diagnostic{Code: INF008, Kind: KindVariableNotFound, Position: pos, Name: name,
		Message: fmt.Sprintf("variable %q is not bound", name)}
}

func CyclicReference(name string, pos position.Position) *Diagnostic {
	return &Diagnostic{Code: TY002, Kind: KindCyclicReference, Position: pos, Name: name,
		Message: fmt.Sprintf("cyclic type reference through %q", name)}
}

func InvalidVariantType(typeDesc string, pos position.Position) *Diagnostic {
	return &Diagnostic{Code: TY004, Kind: KindInvalidVariantType, Position: pos, TypeDesc: typeDesc,
		Message: fmt.Sprintf("invalid variant type %s", typeDesc)}
}

func MissingConfiguration(pos position.Position) *Diagnostic {
	return &Diagnostic{Code: DSG002, Kind: KindMissingConfiguration, Position: pos,
		Message: "desugaring requires a type configuration that was not supplied (prelude mode)"}
}

func CancelledByDriver() *Diagnostic {
	return &Diagnostic{Code: DRV001, Kind: KindCancelledByDriver, Message: "compilation cancelled by driver"}
}
