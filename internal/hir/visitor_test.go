package hir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func varExpr(name string) *Variable { return &Variable{Name: name} }

func TestVisitOrder(t *testing.T) {
	var seen []string
	expr := &If{
		Cond: varExpr("a"),
		Then: varExpr("b"),
		Else: varExpr("c"),
	}
	Visit(expr, func(e Expression) {
		if v, ok := e.(*Variable); ok {
			seen = append(seen, v.Name)
		}
	})
	require.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestTransformRespectsLambdaCapture(t *testing.T) {
	rename := func(v *Variable) Expression {
		if v.Name == "x" {
			return &Variable{Name: "renamed"}
		}
		return v
	}
	lambda := &Lambda{
		Args: []Arg{{Name: "x"}},
		Body: varExpr("x"), // shadowed: must NOT be renamed
	}
	got := transformLambda(lambda, rename)
	gv, ok := got.Body.(*Variable)
	require.True(t, ok)
	require.Equal(t, "x", gv.Name, "lambda argument shadows the outer transform")
}

func TestTransformRewritesFreeVariable(t *testing.T) {
	rename := func(v *Variable) Expression {
		if v.Name == "x" {
			return &Variable{Name: "renamed"}
		}
		return v
	}
	lambda := &Lambda{
		Args: []Arg{{Name: "y"}},
		Body: varExpr("x"), // free: must be renamed
	}
	got := transformLambda(lambda, rename)
	gv, ok := got.Body.(*Variable)
	require.True(t, ok)
	require.Equal(t, "renamed", gv.Name)
}

func TestTransformLetShadowsBodyNotBound(t *testing.T) {
	rename := func(v *Variable) Expression {
		if v.Name == "x" {
			return &Variable{Name: "renamed"}
		}
		return v
	}
	let := &Let{
		Name:    "x",
		HasName: true,
		Bound:   varExpr("x"), // free here (not yet bound): must be renamed
		Body:    varExpr("x"), // bound: must not be renamed
	}
	got := transformExpr(let, rename).(*Let)
	bv := got.Bound.(*Variable)
	bodyv := got.Body.(*Variable)
	require.Equal(t, "renamed", bv.Name)
	require.Equal(t, "x", bodyv.Name)
}
