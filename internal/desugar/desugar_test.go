package desugar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

func pos() hirtypes.Position { return hirtypes.Position{File: "t", Line: 1, Column: 1} }

func testConfig() *config.TypeConfiguration {
	return &config.TypeConfiguration{
		List: config.ListConfiguration{
			EmptyFunctionName:       "list.empty",
			PrependFunctionName:     "list.prepend",
			LazyFunctionName:        "list.lazy",
			ConcatenateFunctionName: "list.concatenate",
			EqualFunctionName:       "list.equal",
		},
		Map: config.MapConfiguration{
			EmptyFunctionName:  "map.empty",
			SetFunctionName:    "map.set",
			DeleteFunctionName: "map.delete",
			MergeFunctionName:  "map.merge",
			EqualFunctionName:  "map.equal",
			Hash: config.HashConfiguration{
				NumberHashFunctionName: "hash.number",
				StringHashFunctionName: "hash.string",
				CombineFunctionName:    "hash.combine",
			},
		},
	}
}

// TestNumberEqualityLeftUnwrapped checks the Number case of the equality
// rewrite table stays an EqualityOperation (the primitive operator is
// itself the monomorphic form).
func TestNumberEqualityLeftUnwrapped(t *testing.T) {
	env := hirtypes.NewEnvironment()
	op := &hir.EqualityOperation{
		Base:     hir.Base{Pos: pos()},
		Type:     &hirtypes.Number{Pos: pos()},
		Operator: hir.EqualityEqual,
		Lhs:      &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 1},
		Rhs:      &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 2},
	}
	out, err := rewriteEquality(op, op.Lhs, op.Rhs, env, nil)
	require.NoError(t, err)
	_, ok := out.(*hir.EqualityOperation)
	require.True(t, ok)
}

// TestBooleanEqualityBuildsNestedIf checks the Boolean rewrite rule.
func TestBooleanEqualityBuildsNestedIf(t *testing.T) {
	env := hirtypes.NewEnvironment()
	op := &hir.EqualityOperation{
		Base:     hir.Base{Pos: pos()},
		Type:     &hirtypes.Boolean{Pos: pos()},
		Operator: hir.EqualityEqual,
		Lhs:      &hir.BooleanLiteral{Base: hir.Base{Pos: pos()}, Value: true},
		Rhs:      &hir.BooleanLiteral{Base: hir.Base{Pos: pos()}, Value: false},
	}
	out, err := rewriteEquality(op, op.Lhs, op.Rhs, env, nil)
	require.NoError(t, err)
	_, ok := out.(*hir.If)
	require.True(t, ok)
}

// TestRecordEqualityCallsSynthesizedHelper is scenario S3.
func TestRecordEqualityCallsSynthesizedHelper(t *testing.T) {
	env := hirtypes.NewEnvironment()
	env.AddRecord(&hirtypes.RecordDefinition{
		Name:   "Point",
		Fields: []hirtypes.Field{{Name: "x", Type: &hirtypes.Number{Pos: pos()}}},
	})
	recordType := &hirtypes.Record{Pos: pos(), Name: "Point"}
	op := &hir.EqualityOperation{
		Base:     hir.Base{Pos: pos()},
		Type:     recordType,
		Operator: hir.EqualityEqual,
		Lhs:      &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "a"},
		Rhs:      &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "b"},
	}
	out, err := rewriteEquality(op, op.Lhs, op.Rhs, env, nil)
	require.NoError(t, err)
	call, ok := out.(*hir.Call)
	require.True(t, ok)
	require.Equal(t, "Point.$equal", call.Function.(*hir.Variable).Name)
}

func TestRecordEqualityRejectsNonComparable(t *testing.T) {
	env := hirtypes.NewEnvironment()
	env.AddRecord(&hirtypes.RecordDefinition{
		Name: "Bad",
		Fields: []hirtypes.Field{
			{Name: "f", Type: &hirtypes.Function{Pos: pos(), Result: &hirtypes.None{Pos: pos()}}},
		},
	})
	recordType := &hirtypes.Record{Pos: pos(), Name: "Bad"}
	op := &hir.EqualityOperation{
		Base: hir.Base{Pos: pos()}, Type: recordType, Operator: hir.EqualityEqual,
		Lhs: &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "a"},
		Rhs: &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "b"},
	}
	_, err := rewriteEquality(op, op.Lhs, op.Rhs, env, nil)
	require.Error(t, err)
}

// TestListLiteralDesugarsToEmptyAndPrepend is scenario S5: `[x]` becomes
// prepend(Thunk(coerce(x, Any)), empty()).
func TestListLiteralDesugarsToEmptyAndPrepend(t *testing.T) {
	env := hirtypes.NewEnvironment()
	cfg := testConfig()
	list := &hir.List{
		Base:        hir.Base{Pos: pos()},
		ElementType: &hirtypes.None{Pos: pos()},
		Elements: []hir.ListElement{
			{Kind: hir.ListElementSingle, Expression: &hir.NoneLiteral{Base: hir.Base{Pos: pos()}}},
		},
	}
	out, err := rewriteList(list, env, cfg)
	require.NoError(t, err)

	call, ok := out.(*hir.Call)
	require.True(t, ok)
	require.Equal(t, "list.prepend", call.Function.(*hir.Variable).Name)
	require.Len(t, call.Args, 2)
	_, isThunk := call.Args[0].(*hir.Thunk)
	require.True(t, isThunk)
	rest, ok := call.Args[1].(*hir.Call)
	require.True(t, ok)
	require.Equal(t, "list.empty", rest.Function.(*hir.Variable).Name)
}

func TestListLiteralRequiresConfiguration(t *testing.T) {
	env := hirtypes.NewEnvironment()
	list := &hir.List{Base: hir.Base{Pos: pos()}, ElementType: &hirtypes.None{Pos: pos()}}
	_, err := rewriteList(list, env, nil)
	require.Error(t, err)
}

// TestMapLiteralDesugarsToEmptyAndSet checks a single-entry map literal
// folds to one `set` call wrapping `empty()`.
func TestMapLiteralDesugarsToEmptyAndSet(t *testing.T) {
	env := hirtypes.NewEnvironment()
	cfg := testConfig()
	m := &hir.Map{
		Base:      hir.Base{Pos: pos()},
		KeyType:   &hirtypes.String{Pos: pos()},
		ValueType: &hirtypes.Number{Pos: pos()},
		Elements: []hir.MapElement{
			{Kind: hir.MapElementSingle,
				Key:   &hir.StringLiteral{Base: hir.Base{Pos: pos()}, Value: "a"},
				Value: &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 1}},
		},
	}
	out, err := rewriteMap(m, env, cfg)
	require.NoError(t, err)

	call, ok := out.(*hir.Call)
	require.True(t, ok)
	require.Equal(t, "map.set", call.Function.(*hir.Variable).Name)
	require.Len(t, call.Args, 4)
}

// TestTryDesugarsToIfTypeOverTemp checks the try rewrite shape.
func TestTryDesugarsToIfTypeOverTemp(t *testing.T) {
	env := hirtypes.NewEnvironment()
	errType := &hirtypes.Error{Pos: pos()}
	env.SetErrorType(errType)
	inner := &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "e"}
	inner.SetInferredType(&hirtypes.Union{Pos: pos(), Lhs: &hirtypes.Number{Pos: pos()}, Rhs: errType})
	op := &hir.TryOperation{Base: hir.Base{Pos: pos()}, Type: &hirtypes.Number{Pos: pos()}, Expression: inner}

	out, err := rewriteTry(op, inner, env)
	require.NoError(t, err)

	let, ok := out.(*hir.Let)
	require.True(t, ok)
	require.Equal(t, tryTempName, let.Name)
	ifType, ok := let.Body.(*hir.IfType)
	require.True(t, ok)
	require.Len(t, ifType.Branches, 1)
	require.True(t, hirtypes.Equal(ifType.Branches[0].Type, errType))
	require.NotNil(t, ifType.Else)
}
