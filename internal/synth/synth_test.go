package synth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

func pos() hirtypes.Position { return hirtypes.Position{File: "t", Line: 1, Column: 1} }

func fooDefinition() *hirtypes.RecordDefinition {
	return &hirtypes.RecordDefinition{
		Pos:  pos(),
		Name: "foo",
		Fields: []hirtypes.Field{
			{Name: "x", Type: &hirtypes.None{Pos: pos()}},
			{Name: "y", Type: &hirtypes.None{Pos: pos()}},
		},
	}
}

// TestEqualDefinitionFoldsFieldsRightToLeft is scenario S3: a two-field
// record's synthesized $equal must be a nested If over both fields.
func TestEqualDefinitionFoldsFieldsRightToLeft(t *testing.T) {
	def := fooDefinition()
	env := hirtypes.NewEnvironment()
	env.AddRecord(def)
	m := &hir.Module{TypeDefinitions: []*hirtypes.RecordDefinition{def}}

	out, err := Module(m, env, nil)
	require.NoError(t, err)
	require.Len(t, out.FunctionDefinitions, 1)

	fn := out.FunctionDefinitions[0]
	require.Equal(t, "foo.$equal", fn.Name)
	require.Len(t, fn.Lambda.Args, 2)

	outer, ok := fn.Lambda.Body.(*hir.If)
	require.True(t, ok)
	outerEq, ok := outer.Cond.(*hir.EqualityOperation)
	require.True(t, ok)
	require.Equal(t, "x", outerEq.Lhs.(*hir.RecordDeconstruction).FieldName)

	inner, ok := outer.Then.(*hir.If)
	require.True(t, ok)
	innerEq, ok := inner.Cond.(*hir.EqualityOperation)
	require.True(t, ok)
	require.Equal(t, "y", innerEq.Lhs.(*hir.RecordDeconstruction).FieldName)

	require.Equal(t, true, inner.Then.(*hir.BooleanLiteral).Value)
	require.Equal(t, false, inner.Else.(*hir.BooleanLiteral).Value)
	require.Equal(t, false, outer.Else.(*hir.BooleanLiteral).Value)
}

func TestExternalRecordGetsDeclarationOnly(t *testing.T) {
	def := fooDefinition()
	def.External = true
	def.Public = true
	def.Declared = true
	env := hirtypes.NewEnvironment()
	env.AddRecord(def)
	m := &hir.Module{TypeDefinitions: []*hirtypes.RecordDefinition{def}}

	out, err := Module(m, env, nil)
	require.NoError(t, err)
	require.Empty(t, out.FunctionDefinitions)
	require.Len(t, out.FunctionDeclarations, 1)
	require.Equal(t, "foo.$equal", out.FunctionDeclarations[0].Name)
}

func TestNonComparableRecordSkipped(t *testing.T) {
	def := &hirtypes.RecordDefinition{
		Pos:  pos(),
		Name: "bar",
		Fields: []hirtypes.Field{
			{Name: "f", Type: &hirtypes.Function{Pos: pos(), Result: &hirtypes.None{Pos: pos()}}},
		},
	}
	env := hirtypes.NewEnvironment()
	env.AddRecord(def)
	m := &hir.Module{TypeDefinitions: []*hirtypes.RecordDefinition{def}}

	out, err := Module(m, env, nil)
	require.NoError(t, err)
	require.Empty(t, out.FunctionDefinitions)
	require.Empty(t, out.FunctionDeclarations)
}

func TestHashDefinitionSkippedWithoutConfiguration(t *testing.T) {
	def := fooDefinition()
	env := hirtypes.NewEnvironment()
	env.AddRecord(def)
	m := &hir.Module{TypeDefinitions: []*hirtypes.RecordDefinition{def}}

	out, err := Module(m, env, nil)
	require.NoError(t, err)
	for _, fn := range out.FunctionDefinitions {
		require.NotContains(t, fn.Name, "$hash")
	}
}

func TestHashDefinitionFoldsCombineCalls(t *testing.T) {
	def := fooDefinition()
	env := hirtypes.NewEnvironment()
	env.AddRecord(def)
	m := &hir.Module{TypeDefinitions: []*hirtypes.RecordDefinition{def}}
	cfg := &config.TypeConfiguration{
		Map: config.MapConfiguration{
			Hash: config.HashConfiguration{CombineFunctionName: "hash.combine"},
		},
	}

	out, err := Module(m, env, cfg)
	require.NoError(t, err)

	var hashFn *hir.FunctionDefinition
	for _, fn := range out.FunctionDefinitions {
		if fn.Name == "foo.$hash" {
			hashFn = fn
		}
	}
	require.NotNil(t, hashFn)
	call, ok := hashFn.Lambda.Body.(*hir.Call)
	require.True(t, ok)
	require.Equal(t, "hash.combine", call.Function.(*hir.Variable).Name)
}

// TestFieldHashExpressionDispatchesUnionMembers is the hash counterpart of
// unionEqual's dispatch test: a comparable union-typed field (Number|None)
// must hash by dispatching on the field's dynamic member type rather than
// erroring as not comparable.
func TestFieldHashExpressionDispatchesUnionMembers(t *testing.T) {
	env := hirtypes.NewEnvironment()
	union := &hirtypes.Union{Pos: pos(), Lhs: &hirtypes.Number{Pos: pos()}, Rhs: &hirtypes.None{Pos: pos()}}
	cfg := &config.TypeConfiguration{
		Map: config.MapConfiguration{
			Hash: config.HashConfiguration{NumberHashFunctionName: "number.hash"},
		},
	}

	value := &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "$field"}
	expr, err := FieldHashExpression(value, union, pos(), env, cfg)
	require.NoError(t, err)

	dispatch, ok := expr.(*hir.IfType)
	require.True(t, ok)
	require.Len(t, dispatch.Branches, 2)

	var sawNumber, sawNone bool
	for _, branch := range dispatch.Branches {
		switch branch.Type.(type) {
		case *hirtypes.Number:
			sawNumber = true
			call, ok := branch.Expression.(*hir.Call)
			require.True(t, ok)
			require.Equal(t, "number.hash", call.Function.(*hir.Variable).Name)
		case *hirtypes.None:
			sawNone = true
			_, ok := branch.Expression.(*hir.NumberLiteral)
			require.True(t, ok)
		}
	}
	require.True(t, sawNumber)
	require.True(t, sawNone)
}

// TestHashDefinitionHandlesComparableUnionField exercises the field through
// the full Module path: a record with a Number|None field must still get a
// synthesized $hash, not an error.
func TestHashDefinitionHandlesComparableUnionField(t *testing.T) {
	union := &hirtypes.Union{Pos: pos(), Lhs: &hirtypes.Number{Pos: pos()}, Rhs: &hirtypes.None{Pos: pos()}}
	def := &hirtypes.RecordDefinition{
		Pos:    pos(),
		Name:   "withUnion",
		Fields: []hirtypes.Field{{Name: "value", Type: union}},
	}
	env := hirtypes.NewEnvironment()
	env.AddRecord(def)
	m := &hir.Module{TypeDefinitions: []*hirtypes.RecordDefinition{def}}
	cfg := &config.TypeConfiguration{
		Map: config.MapConfiguration{
			Hash: config.HashConfiguration{
				CombineFunctionName:    "hash.combine",
				NumberHashFunctionName: "number.hash",
			},
		},
	}

	out, err := Module(m, env, cfg)
	require.NoError(t, err)

	var hashFn *hir.FunctionDefinition
	for _, fn := range out.FunctionDefinitions {
		if fn.Name == "withUnion.$hash" {
			hashFn = fn
		}
	}
	require.NotNil(t, hashFn)
}
