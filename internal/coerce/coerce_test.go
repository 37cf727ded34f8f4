package coerce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/infer"
)

func pos() hirtypes.Position { return hirtypes.Position{File: "t", Line: 1, Column: 1} }

func buildAndInfer(t *testing.T, lambda *hir.Lambda, env *hirtypes.Environment) *hir.Lambda {
	t.Helper()
	def := &hir.FunctionDefinition{Name: "f", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}
	out, err := infer.Module(m, env)
	require.NoError(t, err)
	return out.FunctionDefinitions[0].Lambda
}

// TestUnionReturnGetsCoerced is scenario S2: a Number-returning literal body
// declared as Number | None must end up wrapped in a TypeCoercion to the
// declared union.
func TestUnionReturnGetsCoerced(t *testing.T) {
	declared := &hirtypes.Union{Pos: pos(), Lhs: &hirtypes.Number{Pos: pos()}, Rhs: &hirtypes.None{Pos: pos()}}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos()},
		ResultType: declared,
		Body:       &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 42},
	}
	env := hirtypes.NewEnvironment()
	inferred := buildAndInfer(t, lambda, env)

	coerced, err := coerceLambda(inferred, env)
	require.NoError(t, err)

	tc, ok := coerced.Body.(*hir.TypeCoercion)
	require.True(t, ok)
	require.True(t, hirtypes.Equal(tc.To, declared))
	_, isNumber := tc.Argument.(*hir.NumberLiteral)
	require.True(t, isNumber)
}

// TestIdentityFunctionNoCoercion checks scenario S1: when the body's
// inferred type already equals the declared result type, no TypeCoercion
// is introduced.
func TestIdentityFunctionNoCoercion(t *testing.T) {
	none := &hirtypes.None{Pos: pos()}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos()},
		Args:       []hir.Arg{{Name: "x", Type: none}},
		ResultType: none,
		Body:       &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "x"},
	}
	env := hirtypes.NewEnvironment()
	inferred := buildAndInfer(t, lambda, env)

	coerced, err := coerceLambda(inferred, env)
	require.NoError(t, err)

	_, wrapped := coerced.Body.(*hir.TypeCoercion)
	require.False(t, wrapped)
}

// TestCoercionIsIdempotent verifies the testable property that coercing an
// already-coerced lambda inserts no further TypeCoercion nodes.
func TestCoercionIsIdempotent(t *testing.T) {
	declared := &hirtypes.Union{Pos: pos(), Lhs: &hirtypes.Number{Pos: pos()}, Rhs: &hirtypes.None{Pos: pos()}}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos()},
		ResultType: declared,
		Body:       &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 42},
	}
	env := hirtypes.NewEnvironment()
	inferred := buildAndInfer(t, lambda, env)

	once, err := coerceLambda(inferred, env)
	require.NoError(t, err)
	twice, err := coerceLambda(once, env)
	require.NoError(t, err)

	_, onceIsCoercion := once.Body.(*hir.TypeCoercion)
	_, twiceIsCoercion := twice.Body.(*hir.TypeCoercion)
	require.True(t, onceIsCoercion)
	require.True(t, twiceIsCoercion)

	onceArg := once.Body.(*hir.TypeCoercion).Argument
	twiceArg := twice.Body.(*hir.TypeCoercion).Argument
	_, onceArgIsCoercion := onceArg.(*hir.TypeCoercion)
	_, twiceArgIsCoercion := twiceArg.(*hir.TypeCoercion)
	require.False(t, onceArgIsCoercion)
	require.False(t, twiceArgIsCoercion)
}

// TestCallArgumentWidened checks that a Number argument passed to a
// parameter declared Any gets wrapped at the call site.
func TestCallArgumentWidened(t *testing.T) {
	paramType := &hirtypes.Any{Pos: pos()}
	callee := &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "takesAny"}
	call := &hir.Call{
		Base:     hir.Base{Pos: pos()},
		Function: callee,
		Args:     []hir.Expression{&hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 1}},
	}
	decl := &hir.FunctionDeclaration{
		Name: "takesAny",
		Type: &hirtypes.Function{Pos: pos(), Args: []hirtypes.Type{paramType}, Result: &hirtypes.None{Pos: pos()}},
	}
	lambda := &hir.Lambda{Base: hir.Base{Pos: pos()}, ResultType: &hirtypes.None{Pos: pos()}, Body: call}
	def := &hir.FunctionDefinition{Name: "g", Lambda: lambda}
	m := &hir.Module{
		FunctionDefinitions:  []*hir.FunctionDefinition{def},
		FunctionDeclarations: []*hir.FunctionDeclaration{decl},
	}
	env := hirtypes.NewEnvironment()
	out, err := infer.Module(m, env)
	require.NoError(t, err)

	coerced, err := coerceLambda(out.FunctionDefinitions[0].Lambda, env)
	require.NoError(t, err)

	coercedCall := coerced.Body.(*hir.Call)
	_, wrapped := coercedCall.Args[0].(*hir.TypeCoercion)
	require.True(t, wrapped)
}
