package mir

import "github.com/sunholo/corehir/internal/position"

// Expression is the closed sum of MIR expressions, matching the node set
// exercised by original_source's analysis/normalization/alias_removal.rs
// and analysis/lambda_lifting/escape.rs (Case/Alternative/
// DefaultAlternative, CloneVariables/DropVariables, LetRecursive over a
// FunctionDefinition carrying an explicit environment, Synchronize,
// Record/RecordField/RecordUpdate, TryOperation, Variant).
type Expression interface {
	Position() position.Position
	exprNode()
}

type Base struct{ Pos position.Position }

func (b *Base) Position() position.Position { return b.Pos }

type BooleanLiteral struct {
	Base
	Value bool
}

type NoneLiteral struct{ Base }

type NumberLiteral struct {
	Base
	Value float64
}

type ByteStringLiteral struct {
	Base
	Value string
}

type Variable struct {
	Base
	Name string
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
	Lhs, Rhs Expression
}

// ComparisonOperator merges HIR's EqualityOperator and OrderOperator into
// the single enum original_source's mir::ir::ComparisonOperation uses.
type ComparisonOperator int

const (
	ComparisonEqual ComparisonOperator = iota
	ComparisonNotEqual
	ComparisonLessThan
	ComparisonLessThanOrEqual
	ComparisonGreaterThan
	ComparisonGreaterThanOrEqual
)

type ComparisonOperation struct {
	Base
	Operator ComparisonOperator
	Lhs, Rhs Expression
}

type Call struct {
	Base
	Type     Type // result type
	Function Expression
	Args     []Expression
}

type If struct {
	Base
	Cond, Then, Else Expression
}

// Let binds Bound to Name in Body. Aliasing Let{Name, Variable(y)} nodes
// are removed by internal/lower's alias-removal post-pass
// (removeAliasesAll), matching
// alias_removal.rs's transform_expression.
type Let struct {
	Base
	Name  string
	Type  Type
	Bound Expression
	Body  Expression
}

// Argument is a closure parameter or environment slot: a name and its type.
type Argument struct {
	Name string
	Type Type
}

// FunctionDefinition is a closure: Environment lists the free variables
// captured from the enclosing scope (spec §4.8's "explicit environment"),
// Arguments the parameters supplied at the call site. IsThunk flags a
// zero-argument closure the back end must memoize on first force (spec's
// Thunk lowering rule).
type FunctionDefinition struct {
	Name        string
	Environment []Argument
	Arguments   []Argument
	Result      Type
	Body        Expression
	IsThunk     bool
}

// FunctionDeclaration is a closure signature with no body (foreign import
// or externally-defined function).
type FunctionDeclaration struct {
	Name string
	Type *FunctionType
}

// FunctionType is the MIR-level function type: argument/result Types.
type FunctionType struct {
	Arguments []Type
	Result    Type
}

func (f *FunctionType) String() string { return "function" }
func (*FunctionType) isMirType()       {}

// LetRecursive binds a closure to its own name within Body, allowing the
// closure body to refer to itself (self-recursion) and to sibling
// closures bound in the same environment chain.
type LetRecursive struct {
	Base
	Definition *FunctionDefinition
	Body       Expression
}

// Alternative is one arm of a Case: it fires when the scrutinee's runtime
// tag matches any of Types, binding the unwrapped payload to Name.
type Alternative struct {
	Types []Type
	Name  string
	Body  Expression
}

// DefaultAlternative is Case's catch-all arm.
type DefaultAlternative struct {
	Name string
	Body Expression
}

// Case is the back end's tagged-variant dispatch (spec §6.2). It realizes
// IfType (HIR union dispatch), IfList and IfMap once lowered; the
// try-desugared shape lowers to TryOperation instead.
type Case struct {
	Base
	Argument     Expression
	Alternatives []Alternative
	Default      *DefaultAlternative
}

// Variant boxes Payload as a dynamically-tagged value of static shape
// Type; the inverse of unboxing via Case.
type Variant struct {
	Base
	Type    Type
	Payload Expression
}

type RecordFieldValue struct {
	Expression Expression
}

// Record constructs a value of a named record type with explicit
// positional fields (spec §6.2's "record construction with explicit field
// indexing" — field names are erased to position by this point).
type Record struct {
	Base
	Type   Type
	Fields []Expression
}

// RecordField projects field Index out of Record (explicit indexing,
// no name lookup at this level).
type RecordField struct {
	Base
	Type   Type
	Index  int
	Record Expression
}

type RecordUpdateField struct {
	Index      int
	Expression Expression
}

type RecordUpdate struct {
	Base
	Type   Type
	Record Expression
	Fields []RecordUpdateField
}

// TryOperation lowers HIR's try-desugared IfType into the back end's
// native early-return primitive: Operand is evaluated, bound to Name, and
// Then runs with Name visible; the back end substitutes its own
// early-exit instruction for the implicit error path (spec §4.8).
type TryOperation struct {
	Base
	Operand Expression
	Name    string
	Type    Type
	Then    Expression
}

// CloneVariables/DropVariables mark reference-count adjustments the back
// end's ownership model needs at scope boundaries (spec §5: "memory is
// managed by the host language's ownership model").
type CloneVariables struct {
	Base
	Variables map[string]Type
	Expr      Expression
}

type DropVariables struct {
	Base
	Variables map[string]Type
	Expr      Expression
}

// Synchronize marks a point where a concurrently-produced thunk's value
// must be observed (spec §5's atomic compare-and-swap thunk finalization).
type Synchronize struct {
	Base
	Type Type
	Expr Expression
}

func (*BooleanLiteral) exprNode()       {}
func (*NoneLiteral) exprNode()          {}
func (*NumberLiteral) exprNode()        {}
func (*ByteStringLiteral) exprNode()    {}
func (*Variable) exprNode()             {}
func (*ArithmeticOperation) exprNode()  {}
func (*ComparisonOperation) exprNode()  {}
func (*Call) exprNode()                 {}
func (*If) exprNode()                   {}
func (*Let) exprNode()                  {}
func (*LetRecursive) exprNode()         {}
func (*Case) exprNode()                 {}
func (*Variant) exprNode()              {}
func (*Record) exprNode()               {}
func (*RecordField) exprNode()          {}
func (*RecordUpdate) exprNode()         {}
func (*TryOperation) exprNode()         {}
func (*CloneVariables) exprNode()       {}
func (*DropVariables) exprNode()        {}
func (*Synchronize) exprNode()          {}

// TypeDefinition names a generated wrapper record realizing a polymorphic
// container type as a concrete MIR record (spec §4.7's generic type
// collection): Fields holds the single runtime-representation field the
// container wraps.
type TypeDefinition struct {
	Name   string
	Fields []Type
}

// Module is the MIR top-level aggregate.
type Module struct {
	TypeDefinitions      []*TypeDefinition
	FunctionDeclarations []*FunctionDeclaration
	FunctionDefinitions  []*FunctionDefinition
}
