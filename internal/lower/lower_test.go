package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/mir"
)

func pos() hirtypes.Position { return hirtypes.Position{File: "t", Line: 1, Column: 1} }

func numberLiteral(v float64) *hir.NumberLiteral {
	n := &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: v}
	n.SetInferredType(&hirtypes.Number{Pos: pos()})
	return n
}

// TestModuleLowersSimpleFunction checks that a top-level, argument-free
// function returning a Number literal produces a single MIR
// FunctionDefinition with the same name and a literal body.
func TestModuleLowersSimpleFunction(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	body := numberLiteral(7)
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos(), Inferred: numberType},
		ResultType: numberType,
		Body:       body,
	}
	def := &hir.FunctionDefinition{Pos: pos(), Name: "seven", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}
	env := hirtypes.NewEnvironment()

	out, err := Module(m, env, &config.TypeConfiguration{})
	require.NoError(t, err)
	require.Len(t, out.FunctionDefinitions, 1)
	got := out.FunctionDefinitions[0]
	require.Equal(t, "seven", got.Name)
	lit, ok := got.Body.(*mir.NumberLiteral)
	require.True(t, ok)
	require.Equal(t, 7.0, lit.Value)
}

// TestAliasLetIsRemoved checks that `let y = x in body` is eliminated by the
// post-pass, with every reference to y rewritten to x.
func TestAliasLetIsRemoved(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	xVar := &hir.Variable{Base: hir.Base{Pos: pos(), Inferred: numberType}, Name: "x"}
	yVar := &hir.Variable{Base: hir.Base{Pos: pos(), Inferred: numberType}, Name: "y"}
	let := &hir.Let{
		Base: hir.Base{Pos: pos(), Inferred: numberType},
		Name: "y", HasName: true, Declared: numberType,
		Bound: xVar,
		Body:  yVar,
	}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos(), Inferred: numberType},
		Args:       []hir.Arg{{Name: "x", Type: numberType}},
		ResultType: numberType,
		Body:       let,
	}
	def := &hir.FunctionDefinition{Pos: pos(), Name: "f", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}
	env := hirtypes.NewEnvironment()

	out, err := Module(m, env, &config.TypeConfiguration{})
	require.NoError(t, err)
	body := out.FunctionDefinitions[0].Body
	v, ok := body.(*mir.Variable)
	require.True(t, ok, "alias Let should collapse to a bare Variable")
	require.Equal(t, "x", v.Name)
}

// TestLambdaValueClosureConverts checks that a lambda in expression
// position lowers to a LetRecursive binding wrapping a reference to its own
// generated name, with its free variable captured in the environment.
func TestLambdaValueClosureConverts(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	captured := &hir.Variable{Base: hir.Base{Pos: pos(), Inferred: numberType}, Name: "captured"}
	inner := &hir.Lambda{
		Base:       hir.Base{Pos: pos(), Inferred: numberType},
		Args:       []hir.Arg{{Name: "n", Type: numberType}},
		ResultType: numberType,
		Body:       captured,
	}
	outer := &hir.Lambda{
		Base:       hir.Base{Pos: pos(), Inferred: numberType},
		Args:       []hir.Arg{{Name: "captured", Type: numberType}},
		ResultType: numberType,
		Body:       inner,
	}
	def := &hir.FunctionDefinition{Pos: pos(), Name: "make", Lambda: outer}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}
	env := hirtypes.NewEnvironment()

	out, err := Module(m, env, &config.TypeConfiguration{})
	require.NoError(t, err)
	letrec, ok := out.FunctionDefinitions[0].Body.(*mir.LetRecursive)
	require.True(t, ok)
	require.Len(t, letrec.Definition.Environment, 1)
	require.Equal(t, "captured", letrec.Definition.Environment[0].Name)
	ref, ok := letrec.Body.(*mir.Variable)
	require.True(t, ok)
	require.Equal(t, letrec.Definition.Name, ref.Name)
}

// TestIfTypeLowersToCase checks that IfType produces a Case with one
// Alternative per branch plus a DefaultAlternative for Else.
func TestIfTypeLowersToCase(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	noneType := &hirtypes.None{Pos: pos()}
	arg := &hir.Variable{Base: hir.Base{Pos: pos(), Inferred: &hirtypes.Union{Pos: pos(), Lhs: numberType, Rhs: noneType}}, Name: "u"}
	ift := &hir.IfType{
		Base:          hir.Base{Pos: pos(), Inferred: numberType},
		ScrutineeName: "u",
		Argument:      arg,
		Branches: []hir.IfTypeBranch{
			{Type: numberType, Expression: &hir.Variable{Base: hir.Base{Pos: pos(), Inferred: numberType}, Name: "u"}},
		},
		Else: &hir.IfTypeElseBranch{Type: numberType, Expression: numberLiteral(0)},
	}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos(), Inferred: numberType},
		Args:       []hir.Arg{{Name: "u", Type: ift.Argument.InferredType()}},
		ResultType: numberType,
		Body:       ift,
	}
	def := &hir.FunctionDefinition{Pos: pos(), Name: "unwrap", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}
	env := hirtypes.NewEnvironment()

	out, err := Module(m, env, &config.TypeConfiguration{})
	require.NoError(t, err)
	kase, ok := out.FunctionDefinitions[0].Body.(*mir.Case)
	require.True(t, ok)
	require.Len(t, kase.Alternatives, 1)
	require.NotNil(t, kase.Default)
}

// TestTryCanonicalShapeLowersToTryOperation checks that the canonical
// `let $try = e in if_type($try; Error => $try; else => $try)` shape
// produced by desugar's try.go lowers directly to mir.TryOperation rather
// than a generic Case.
func TestTryCanonicalShapeLowersToTryOperation(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	errType := &hirtypes.Error{Pos: pos(), Source: numberType}
	unionType := &hirtypes.Union{Pos: pos(), Lhs: numberType, Rhs: errType}
	callee := &hir.Variable{Base: hir.Base{Pos: pos(), Inferred: unionType}, Name: "risky"}
	call := &hir.Call{Base: hir.Base{Pos: pos(), Inferred: unionType}, Function: callee}

	tryVar := func() *hir.Variable {
		return &hir.Variable{Base: hir.Base{Pos: pos(), Inferred: unionType}, Name: tryTempName}
	}
	ift := &hir.IfType{
		Base:          hir.Base{Pos: pos(), Inferred: numberType},
		ScrutineeName: tryTempName,
		Argument:      tryVar(),
		Branches: []hir.IfTypeBranch{
			{Type: errType, Expression: tryVar()},
		},
		Else: &hir.IfTypeElseBranch{Type: numberType, Expression: tryVar()},
	}
	let := &hir.Let{
		Base: hir.Base{Pos: pos(), Inferred: numberType},
		Name: tryTempName, HasName: true, Declared: unionType,
		Bound: call,
		Body:  ift,
	}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos(), Inferred: numberType},
		Args:       []hir.Arg{{Name: "risky", Type: unionType}},
		ResultType: numberType,
		Body:       let,
	}
	def := &hir.FunctionDefinition{Pos: pos(), Name: "run", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}
	env := hirtypes.NewEnvironment()

	out, err := Module(m, env, &config.TypeConfiguration{})
	require.NoError(t, err)
	tryOp, ok := out.FunctionDefinitions[0].Body.(*mir.TryOperation)
	require.True(t, ok, "canonical try shape must lower to mir.TryOperation")
	require.Equal(t, tryTempName, tryOp.Name)
}

// TestRecordConstructionIndexesFields checks that field values are ordered
// by the record's declared field order rather than literal source order.
func TestRecordConstructionIndexesFields(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	recType := &hirtypes.Record{Pos: pos(), Name: "Point"}
	def := &hirtypes.RecordDefinition{
		Pos: pos(), Name: "Point",
		Fields: []hirtypes.Field{{Name: "x", Type: numberType}, {Name: "y", Type: numberType}},
	}
	env := hirtypes.NewEnvironment()
	env.AddRecord(def)

	rc := &hir.RecordConstruction{
		Base: hir.Base{Pos: pos(), Inferred: recType},
		Type: recType,
		Fields: []hir.RecordFieldValue{
			{Name: "y", Expression: numberLiteral(2)},
			{Name: "x", Expression: numberLiteral(1)},
		},
	}
	lambda := &hir.Lambda{Base: hir.Base{Pos: pos(), Inferred: recType}, ResultType: recType, Body: rc}
	fdef := &hir.FunctionDefinition{Pos: pos(), Name: "mk", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{fdef}}

	out, err := Module(m, env, &config.TypeConfiguration{})
	require.NoError(t, err)
	rec, ok := out.FunctionDefinitions[0].Body.(*mir.Record)
	require.True(t, ok)
	require.Len(t, rec.Fields, 2)
	xv, ok := rec.Fields[0].(*mir.NumberLiteral)
	require.True(t, ok)
	require.Equal(t, 1.0, xv.Value)
	yv, ok := rec.Fields[1].(*mir.NumberLiteral)
	require.True(t, ok)
	require.Equal(t, 2.0, yv.Value)
}
