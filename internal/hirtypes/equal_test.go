package hirtypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEqualUnionIgnoresConstructionOrder is the direct Equal counterpart of
// TestTypeIDEqualityProperty: a Union built as Number|String must equal one
// built as String|Number, since a Union is semantically a set (spec §3.2)
// and type_id(A) == type_id(B) iff equal(A, B) (spec §8 property 5).
func TestEqualUnionIgnoresConstructionOrder(t *testing.T) {
	a := &Union{Pos: fakePos(), Lhs: &Number{Pos: fakePos()}, Rhs: &String{Pos: fakePos()}}
	b := &Union{Pos: fakePos(), Lhs: &String{Pos: fakePos()}, Rhs: &Number{Pos: fakePos()}}
	require.True(t, Equal(a, b))
	require.True(t, Equal(b, a))
}

// TestEqualUnionIgnoresNestingShape checks that a left-leaning and a
// right-leaning nesting of the same three members still compare equal,
// since flattenUnion must descend through every nested Union regardless of
// shape.
func TestEqualUnionIgnoresNestingShape(t *testing.T) {
	leftLeaning := &Union{
		Pos: fakePos(),
		Lhs: &Union{Pos: fakePos(), Lhs: &Number{Pos: fakePos()}, Rhs: &String{Pos: fakePos()}},
		Rhs: &Boolean{Pos: fakePos()},
	}
	rightLeaning := &Union{
		Pos: fakePos(),
		Lhs: &Boolean{Pos: fakePos()},
		Rhs: &Union{Pos: fakePos(), Lhs: &String{Pos: fakePos()}, Rhs: &Number{Pos: fakePos()}},
	}
	require.True(t, Equal(leftLeaning, rightLeaning))
}

func TestEqualUnionDifferentMembersNotEqual(t *testing.T) {
	a := &Union{Pos: fakePos(), Lhs: &Number{Pos: fakePos()}, Rhs: &String{Pos: fakePos()}}
	b := &Union{Pos: fakePos(), Lhs: &Number{Pos: fakePos()}, Rhs: &Boolean{Pos: fakePos()}}
	require.False(t, Equal(a, b))
}

func TestEqualUnionDifferentSizeNotEqual(t *testing.T) {
	a := &Union{Pos: fakePos(), Lhs: &Number{Pos: fakePos()}, Rhs: &String{Pos: fakePos()}}
	b := &Union{
		Pos: fakePos(),
		Lhs: &Number{Pos: fakePos()},
		Rhs: &Union{Pos: fakePos(), Lhs: &String{Pos: fakePos()}, Rhs: &Boolean{Pos: fakePos()}},
	}
	require.False(t, Equal(a, b))
}
