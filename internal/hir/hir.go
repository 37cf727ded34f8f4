// Package hir implements the high-level intermediate representation: the
// Expression/Type-definition/Module ADTs of spec §3.3-§3.6, built the way
// the teacher's internal/core package builds its Core AST (a closed
// interface with small concrete node structs, each embedding a common base
// that carries position and bookkeeping).
package hir

import (
	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/position"
)

// Base is embedded by every Expression. It carries the source position and
// the inference slot described in spec §3.4: nil until the inference pass
// runs, populated (to a canonical Type) afterward. Passes that require it
// return errors.TypeNotInferred if it is still nil.
type Base struct {
	Pos      position.Position
	Inferred hirtypes.Type
}

func (b *Base) Position() position.Position      { return b.Pos }
func (b *Base) InferredType() hirtypes.Type       { return b.Inferred }
func (b *Base) SetInferredType(t hirtypes.Type)   { b.Inferred = t }

// Expression is the closed sum of HIR expressions (spec §3.4).
type Expression interface {
	Position() position.Position
	InferredType() hirtypes.Type
	SetInferredType(hirtypes.Type)
	exprNode()
}

// Literals

type BooleanLiteral struct {
	Base
	Value bool
}

type NoneLiteral struct{ Base }

type NumberLiteral struct {
	Base
	Value float64
}

type StringLiteral struct {
	Base
	Value string
}

type Variable struct {
	Base
	Name string
}

// Arg is a lambda parameter: a name and its declared type.
type Arg struct {
	Name string
	Type hirtypes.Type
}

type Lambda struct {
	Base
	Args       []Arg
	ResultType hirtypes.Type
	Body       Expression
}

type Call struct {
	Base
	FunctionType hirtypes.Type // inference slot; Some(Function) after inference
	Function     Expression
	Args         []Expression
}

// Let binds Bound to Name within Body when HasName is set. Without HasName
// the value is still evaluated for effects but contributes no binding
// (spec §4.3).
type Let struct {
	Base
	Name        string
	HasName     bool
	Declared    hirtypes.Type // optional source annotation
	Bound       Expression
	Body        Expression
}

type If struct {
	Base
	Cond Expression
	Then Expression
	Else Expression
}

// IfList destructures a list into its head/tail, or falls through to Else
// if the list is empty.
type IfList struct {
	Base
	ElementType hirtypes.Type // inference slot
	List        Expression
	First       string
	Rest        string
	Then        Expression
	Else        Expression
}

// IfMap looks up Key in Map, binding the found value to Name in Then.
type IfMap struct {
	Base
	KeyType   hirtypes.Type // inference slot
	ValueType hirtypes.Type // inference slot
	Name      string
	Map       Expression
	Key       Expression
	Then      Expression
	Else      Expression
}

// IfTypeBranch tests Argument against Type.
type IfTypeBranch struct {
	Type       hirtypes.Type
	Expression Expression
}

// IfTypeElseBranch carries the residual type (scrutinee's type minus every
// branch type) in its Type slot, populated by inference (spec §4.3).
type IfTypeElseBranch struct {
	Type       hirtypes.Type // inference slot: residual union
	Expression Expression
}

type IfType struct {
	Base
	ScrutineeName string
	Argument      Expression
	Branches      []IfTypeBranch
	Else          *IfTypeElseBranch // nil if no else branch
}

// ListElementKind distinguishes a single element from a spread of another
// list's elements within a list literal.
type ListElementKind int

const (
	ListElementSingle ListElementKind = iota
	ListElementMultiple
)

type ListElement struct {
	Kind       ListElementKind
	Expression Expression
}

type List struct {
	Base
	ElementType hirtypes.Type
	Elements    []ListElement
}

// ComprehensionBranch is a single `for name in list` generator clause.
type ComprehensionBranch struct {
	Name string
	List Expression
}

type ListComprehension struct {
	Base
	OutputType hirtypes.Type
	Element    Expression
	Branches   []ComprehensionBranch
}

// MapElementKind distinguishes an explicit key:value entry, a spread of
// another map, and a key removal within a map literal (spec §3.4, §4.7).
type MapElementKind int

const (
	MapElementSingle MapElementKind = iota
	MapElementMultiple
	MapElementRemoval
)

type MapElement struct {
	Kind  MapElementKind
	Key   Expression // Single, Removal
	Value Expression // Single
	Map   Expression // Multiple
}

type Map struct {
	Base
	KeyType   hirtypes.Type
	ValueType hirtypes.Type
	Elements  []MapElement
}

type RecordFieldValue struct {
	Name       string
	Expression Expression
}

type RecordConstruction struct {
	Base
	Type   hirtypes.Type
	Fields []RecordFieldValue
}

type RecordDeconstruction struct {
	Base
	RecordType hirtypes.Type // inference slot
	Record     Expression
	FieldName  string
}

type RecordUpdate struct {
	Base
	Type   hirtypes.Type
	Record Expression
	Fields []RecordFieldValue
}

// Thunk is a zero-argument lazily-evaluated closure (spec glossary). Its
// inference slot stores the body's type; InferredType() stores
// Function([], bodyType).
type Thunk struct {
	Base
	BodyType hirtypes.Type // inference slot
	Expr     Expression
}

// TypeCoercion is inserted by the coercion pass (spec §4.5); it never
// narrows.
type TypeCoercion struct {
	Base
	From     hirtypes.Type
	To       hirtypes.Type
	Argument Expression
}

type ArithmeticOperator int

const (
	ArithmeticAdd ArithmeticOperator = iota
	ArithmeticSubtract
	ArithmeticMultiply
	ArithmeticDivide
)

type ArithmeticOperation struct {
	Base
	Operator ArithmeticOperator
	Lhs      Expression
	Rhs      Expression
}

type BooleanOperator int

const (
	BooleanAnd BooleanOperator = iota
	BooleanOr
)

type BooleanOperation struct {
	Base
	Operator BooleanOperator
	Lhs      Expression
	Rhs      Expression
}

type EqualityOperator int

const (
	EqualityEqual EqualityOperator = iota
	EqualityNotEqual
)

// EqualityOperation's Type slot records the canonical type being compared,
// needed by desugaring to pick the right rewrite (spec §3.4, §4.7).
type EqualityOperation struct {
	Base
	Type     hirtypes.Type // inference slot
	Operator EqualityOperator
	Lhs      Expression
	Rhs      Expression
}

type OrderOperator int

const (
	OrderLessThan OrderOperator = iota
	OrderLessThanOrEqual
	OrderGreaterThan
	OrderGreaterThanOrEqual
)

type OrderOperation struct {
	Base
	Operator OrderOperator
	Lhs      Expression
	Rhs      Expression
}

type NotOperation struct {
	Base
	Expression Expression
}

// TryOperation's Type slot stores the non-error remainder type computed by
// inference (spec §4.3).
type TryOperation struct {
	Base
	Type       hirtypes.Type // inference slot
	Expression Expression
}

type SpawnOperation struct {
	Base
	Function *Lambda
}

func (*BooleanLiteral) exprNode()       {}
func (*NoneLiteral) exprNode()          {}
func (*NumberLiteral) exprNode()        {}
func (*StringLiteral) exprNode()        {}
func (*Variable) exprNode()             {}
func (*Lambda) exprNode()               {}
func (*Call) exprNode()                 {}
func (*Let) exprNode()                  {}
func (*If) exprNode()                   {}
func (*IfList) exprNode()               {}
func (*IfMap) exprNode()                {}
func (*IfType) exprNode()               {}
func (*List) exprNode()                 {}
func (*ListComprehension) exprNode()    {}
func (*Map) exprNode()                  {}
func (*RecordConstruction) exprNode()   {}
func (*RecordDeconstruction) exprNode() {}
func (*RecordUpdate) exprNode()         {}
func (*Thunk) exprNode()                {}
func (*TypeCoercion) exprNode()         {}
func (*ArithmeticOperation) exprNode()  {}
func (*BooleanOperation) exprNode()     {}
func (*EqualityOperation) exprNode()    {}
func (*OrderOperation) exprNode()       {}
func (*NotOperation) exprNode()         {}
func (*TryOperation) exprNode()         {}
func (*SpawnOperation) exprNode()       {}

// FunctionDeclaration is a foreign or external signature with no body.
type FunctionDeclaration struct {
	Pos        position.Position
	Name       string
	Public     bool
	Type       *hirtypes.Function
	ForeignABI string // "", "C" or "Native" (spec §6.1)
}

// FunctionDefinition is a named function with a lambda body.
type FunctionDefinition struct {
	Pos          position.Position
	Name         string
	Public       bool
	Lambda       *Lambda
	ForeignExport string // "" unless the function is exported to a foreign ABI
}

// TypeAlias is a named alias for a type expression.
type TypeAlias struct {
	Pos    position.Position
	Name   string
	Public bool
	Type   hirtypes.Type
}

// ForeignDeclaration imports an external function under a given calling
// convention (spec §6.1).
type ForeignDeclaration struct {
	Pos  position.Position
	Name string
	ABI  string // "C" or "Native"
	Type *hirtypes.Function
}

// Module is the top-level aggregate (spec §3.5). It owns its definitions;
// every pass consumes a Module and produces a new one (pure transformation).
type Module struct {
	Pos                  position.Position
	TypeDefinitions      []*hirtypes.RecordDefinition
	TypeAliases          []*TypeAlias
	ForeignDeclarations  []*ForeignDeclaration
	FunctionDeclarations []*FunctionDeclaration
	FunctionDefinitions  []*FunctionDefinition
}

// Clone returns a shallow copy of the module with fresh top-level slices,
// suitable as the starting point for a pass that replaces a subset of
// definitions while leaving the rest shared (spec §3.5, §5: passes return
// new, immutable modules).
func (m *Module) Clone() *Module {
	clone := &Module{Pos: m.Pos}
	clone.TypeDefinitions = append(clone.TypeDefinitions, m.TypeDefinitions...)
	clone.TypeAliases = append(clone.TypeAliases, m.TypeAliases...)
	clone.ForeignDeclarations = append(clone.ForeignDeclarations, m.ForeignDeclarations...)
	clone.FunctionDeclarations = append(clone.FunctionDeclarations, m.FunctionDeclarations...)
	clone.FunctionDefinitions = append(clone.FunctionDefinitions, m.FunctionDefinitions...)
	return clone
}

// BuildEnvironment constructs the flat hirtypes.Environment described in
// spec §3.6 from a module's type definitions and aliases.
func (m *Module) BuildEnvironment() *hirtypes.Environment {
	env := hirtypes.NewEnvironment()
	for _, def := range m.TypeDefinitions {
		env.AddRecord(def)
	}
	for _, alias := range m.TypeAliases {
		env.AddAlias(alias.Name, alias.Type)
	}
	return env
}
