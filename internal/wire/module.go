package wire

import (
	"encoding/json"
	"fmt"

	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/position"
)

// ExprNode is the wire format for hir.Expression: a "kind" tag plus
// kind-specific fields. Only the node kinds a realistic hand-written
// fixture exercises are supported; DecodeExpr returns a descriptive error
// for anything else rather than silently dropping information.
type ExprNode struct {
	Kind string `json:"kind"`

	// Literals.
	Bool   *bool    `json:"bool,omitempty"`
	Number *float64 `json:"number,omitempty"`
	String *string  `json:"string,omitempty"`

	// Variable / Arg references.
	Name string `json:"name,omitempty"`

	// Lambda.
	Args       []ArgNode `json:"args,omitempty"`
	ResultType *TypeNode `json:"resultType,omitempty"`
	Body       *ExprNode `json:"body,omitempty"`

	// Call.
	Function *ExprNode   `json:"function,omitempty"`
	CallArgs []ExprNode  `json:"callArgs,omitempty"`

	// Let.
	HasName  bool      `json:"hasName,omitempty"`
	Declared *TypeNode `json:"declared,omitempty"`
	Bound    *ExprNode `json:"bound,omitempty"`

	// If.
	Cond *ExprNode `json:"cond,omitempty"`
	Then *ExprNode `json:"then,omitempty"`
	Else *ExprNode `json:"else,omitempty"`

	// Arithmetic / Equality / Order / Boolean operations.
	Operator string    `json:"operator,omitempty"`
	Lhs      *ExprNode `json:"lhs,omitempty"`
	Rhs      *ExprNode `json:"rhs,omitempty"`

	// Record construction/deconstruction/update.
	Type       *TypeNode       `json:"type,omitempty"`
	Fields     []FieldNode     `json:"fields,omitempty"`
	Record     *ExprNode       `json:"record,omitempty"`
	FieldName  string          `json:"fieldName,omitempty"`
}

// ArgNode is a lambda parameter's wire form.
type ArgNode struct {
	Name string   `json:"name"`
	Type TypeNode `json:"type"`
}

// FieldNode is a record field value's wire form.
type FieldNode struct {
	Name  string   `json:"name"`
	Value ExprNode `json:"value"`
}

// DecodeExpr converts a wire ExprNode into a hir.Expression.
func DecodeExpr(n *ExprNode) (hir.Expression, error) {
	if n == nil {
		return nil, fmt.Errorf("wire: nil expression node")
	}
	pos := position.Synthesize()
	base := hir.Base{Pos: pos}

	switch n.Kind {
	case "bool":
		if n.Bool == nil {
			return nil, fmt.Errorf("wire: bool literal missing value")
		}
		return &hir.BooleanLiteral{Base: base, Value: *n.Bool}, nil

	case "none":
		return &hir.NoneLiteral{Base: base}, nil

	case "number":
		if n.Number == nil {
			return nil, fmt.Errorf("wire: number literal missing value")
		}
		return &hir.NumberLiteral{Base: base, Value: *n.Number}, nil

	case "string":
		if n.String == nil {
			return nil, fmt.Errorf("wire: string literal missing value")
		}
		return &hir.StringLiteral{Base: base, Value: *n.String}, nil

	case "var", "variable":
		return &hir.Variable{Base: base, Name: n.Name}, nil

	case "lambda":
		args, err := decodeArgs(n.Args)
		if err != nil {
			return nil, err
		}
		resultType, err := DecodeType(n.ResultType)
		if err != nil {
			return nil, err
		}
		body, err := DecodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		return &hir.Lambda{Base: base, Args: args, ResultType: resultType, Body: body}, nil

	case "call":
		fn, err := DecodeExpr(n.Function)
		if err != nil {
			return nil, err
		}
		args := make([]hir.Expression, len(n.CallArgs))
		for i := range n.CallArgs {
			a, err := DecodeExpr(&n.CallArgs[i])
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &hir.Call{Base: base, Function: fn, Args: args}, nil

	case "let":
		bound, err := DecodeExpr(n.Bound)
		if err != nil {
			return nil, err
		}
		body, err := DecodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		var declared hirtypes.Type
		if n.Declared != nil {
			declared, err = DecodeType(n.Declared)
			if err != nil {
				return nil, err
			}
		}
		return &hir.Let{Base: base, Name: n.Name, HasName: n.HasName, Declared: declared, Bound: bound, Body: body}, nil

	case "if":
		cond, err := DecodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := DecodeExpr(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := DecodeExpr(n.Else)
		if err != nil {
			return nil, err
		}
		return &hir.If{Base: base, Cond: cond, Then: then, Else: els}, nil

	case "arithmetic":
		lhs, rhs, err := decodeBinary(n)
		if err != nil {
			return nil, err
		}
		op, err := decodeArithmeticOperator(n.Operator)
		if err != nil {
			return nil, err
		}
		return &hir.ArithmeticOperation{Base: base, Operator: op, Lhs: lhs, Rhs: rhs}, nil

	case "equality":
		lhs, rhs, err := decodeBinary(n)
		if err != nil {
			return nil, err
		}
		op, err := decodeEqualityOperator(n.Operator)
		if err != nil {
			return nil, err
		}
		return &hir.EqualityOperation{Base: base, Operator: op, Lhs: lhs, Rhs: rhs}, nil

	case "order":
		lhs, rhs, err := decodeBinary(n)
		if err != nil {
			return nil, err
		}
		op, err := decodeOrderOperator(n.Operator)
		if err != nil {
			return nil, err
		}
		return &hir.OrderOperation{Base: base, Operator: op, Lhs: lhs, Rhs: rhs}, nil

	case "boolean":
		lhs, rhs, err := decodeBinary(n)
		if err != nil {
			return nil, err
		}
		op, err := decodeBooleanOperator(n.Operator)
		if err != nil {
			return nil, err
		}
		return &hir.BooleanOperation{Base: base, Operator: op, Lhs: lhs, Rhs: rhs}, nil

	case "record":
		t, err := DecodeType(n.Type)
		if err != nil {
			return nil, err
		}
		fields := make([]hir.RecordFieldValue, len(n.Fields))
		for i, f := range n.Fields {
			v, err := DecodeExpr(&f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = hir.RecordFieldValue{Name: f.Name, Expression: v}
		}
		return &hir.RecordConstruction{Base: base, Type: t, Fields: fields}, nil

	case "recordField":
		t, err := DecodeType(n.Type)
		if err != nil {
			return nil, err
		}
		rec, err := DecodeExpr(n.Record)
		if err != nil {
			return nil, err
		}
		return &hir.RecordDeconstruction{Base: base, RecordType: t, Record: rec, FieldName: n.FieldName}, nil

	default:
		return nil, fmt.Errorf("wire: unsupported expression kind %q", n.Kind)
	}
}

func decodeArgs(nodes []ArgNode) ([]hir.Arg, error) {
	out := make([]hir.Arg, len(nodes))
	for i, a := range nodes {
		t, err := DecodeType(&a.Type)
		if err != nil {
			return nil, err
		}
		out[i] = hir.Arg{Name: a.Name, Type: t}
	}
	return out, nil
}

func decodeArithmeticOperator(s string) (hir.ArithmeticOperator, error) {
	switch s {
	case "add", "+":
		return hir.ArithmeticAdd, nil
	case "subtract", "-":
		return hir.ArithmeticSubtract, nil
	case "multiply", "*":
		return hir.ArithmeticMultiply, nil
	case "divide", "/":
		return hir.ArithmeticDivide, nil
	default:
		return 0, fmt.Errorf("wire: unknown arithmetic operator %q", s)
	}
}

func decodeEqualityOperator(s string) (hir.EqualityOperator, error) {
	switch s {
	case "equal", "==":
		return hir.EqualityEqual, nil
	case "notEqual", "!=":
		return hir.EqualityNotEqual, nil
	default:
		return 0, fmt.Errorf("wire: unknown equality operator %q", s)
	}
}

func decodeOrderOperator(s string) (hir.OrderOperator, error) {
	switch s {
	case "lessThan", "<":
		return hir.OrderLessThan, nil
	case "lessThanOrEqual", "<=":
		return hir.OrderLessThanOrEqual, nil
	case "greaterThan", ">":
		return hir.OrderGreaterThan, nil
	case "greaterThanOrEqual", ">=":
		return hir.OrderGreaterThanOrEqual, nil
	default:
		return 0, fmt.Errorf("wire: unknown order operator %q", s)
	}
}

func decodeBooleanOperator(s string) (hir.BooleanOperator, error) {
	switch s {
	case "and", "&&":
		return hir.BooleanAnd, nil
	case "or", "||":
		return hir.BooleanOr, nil
	default:
		return 0, fmt.Errorf("wire: unknown boolean operator %q", s)
	}
}

func decodeBinary(n *ExprNode) (hir.Expression, hir.Expression, error) {
	lhs, err := DecodeExpr(n.Lhs)
	if err != nil {
		return nil, nil, err
	}
	rhs, err := DecodeExpr(n.Rhs)
	if err != nil {
		return nil, nil, err
	}
	return lhs, rhs, nil
}

// FunctionNode is a top-level function definition's wire form.
type FunctionNode struct {
	Name   string    `json:"name"`
	Public bool      `json:"public"`
	Lambda ExprNode  `json:"lambda"`
}

// ModuleNode is a hir.Module's wire form: top-level function definitions
// only. Type definitions, aliases, and foreign declarations are left for a
// future revision of this driver format; a module using them must be built
// programmatically rather than decoded from JSON.
type ModuleNode struct {
	Functions []FunctionNode `json:"functions"`
}

// DecodeModule parses raw JSON bytes into a hir.Module.
func DecodeModule(raw []byte) (*hir.Module, error) {
	var mn ModuleNode
	if err := json.Unmarshal(raw, &mn); err != nil {
		return nil, fmt.Errorf("wire: invalid module JSON: %w", err)
	}
	m := &hir.Module{}
	for _, fn := range mn.Functions {
		body, err := DecodeExpr(&fn.Lambda)
		if err != nil {
			return nil, fmt.Errorf("wire: function %q: %w", fn.Name, err)
		}
		lambda, ok := body.(*hir.Lambda)
		if !ok {
			return nil, fmt.Errorf("wire: function %q: lambda field is not a lambda expression", fn.Name)
		}
		m.FunctionDefinitions = append(m.FunctionDefinitions, &hir.FunctionDefinition{
			Name: fn.Name, Public: fn.Public, Lambda: lambda,
		})
	}
	return m, nil
}
