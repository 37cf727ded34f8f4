package hirtypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fakePos() Position { return Position{File: "fake", Line: 1, Column: 1} }

func TestCanonicalizeIdempotent(t *testing.T) {
	env := NewEnvironment()
	cases := []Type{
		&Boolean{Pos: fakePos()},
		&Number{Pos: fakePos()},
		&Any{Pos: fakePos()},
		&Union{Pos: fakePos(), Lhs: &Number{Pos: fakePos()}, Rhs: &None{Pos: fakePos()}},
	}
	for _, c := range cases {
		first, err := Canonicalize(c, env)
		require.NoError(t, err)
		second, err := Canonicalize(first, env)
		require.NoError(t, err)
		require.True(t, Equal(first, second))
	}
}

func TestUnionWithAnyCollapses(t *testing.T) {
	env := NewEnvironment()
	u := &Union{Pos: fakePos(), Lhs: &Number{Pos: fakePos()}, Rhs: &Any{Pos: fakePos()}}
	c, err := Canonicalize(u, env)
	require.NoError(t, err)
	_, ok := c.(*Any)
	require.True(t, ok)
}

func TestUnionMembersRoundTrip(t *testing.T) {
	env := NewEnvironment()
	set := []Type{&Number{Pos: fakePos()}, &String{Pos: fakePos()}, &Boolean{Pos: fakePos()}}
	u, ok := CreateUnion(set, fakePos())
	require.True(t, ok)
	members, err := UnionMembers(u, env)
	require.NoError(t, err)
	require.Len(t, members, len(set))
	for _, want := range set {
		found := false
		for _, got := range members {
			if Equal(want, got) {
				found = true
			}
		}
		require.True(t, found, "member %s missing", want)
	}
}

func TestSubsumptionAnyExcludesError(t *testing.T) {
	env := NewEnvironment()
	ok, err := Subsumes(&Error{Pos: fakePos()}, &Any{Pos: fakePos()}, env)
	require.NoError(t, err)
	require.False(t, ok, "Any must not subsume Error")

	ok, err = Subsumes(&Number{Pos: fakePos()}, &Any{Pos: fakePos()}, env)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSubsumptionErrorOnlySubsumesError(t *testing.T) {
	env := NewEnvironment()
	ok, err := Subsumes(&Number{Pos: fakePos()}, &Error{Pos: fakePos()}, env)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = Subsumes(&Error{Pos: fakePos()}, &Error{Pos: fakePos()}, env)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestTypeIDEqualityProperty(t *testing.T) {
	env := NewEnvironment()
	a := &Union{Pos: fakePos(), Lhs: &Number{Pos: fakePos()}, Rhs: &String{Pos: fakePos()}}
	b := &Union{Pos: fakePos(), Lhs: &String{Pos: fakePos()}, Rhs: &Number{Pos: fakePos()}}

	idA, err := TypeID(a, env)
	require.NoError(t, err)
	idB, err := TypeID(b, env)
	require.NoError(t, err)
	require.Equal(t, idA, idB, "order of union construction must not affect type id")

	idC, err := TypeID(&Boolean{Pos: fakePos()}, env)
	require.NoError(t, err)
	require.NotEqual(t, idA, idC)
}

func TestComparabilityRejectsFunctionAndAny(t *testing.T) {
	env := NewEnvironment()
	ok, err := Comparable(&Function{Pos: fakePos(), Args: nil, Result: &None{Pos: fakePos()}}, env)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = Comparable(&Any{Pos: fakePos()}, env)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestComparableRecordFields(t *testing.T) {
	env := NewEnvironment()
	env.AddRecord(&RecordDefinition{
		Name: "Point",
		Fields: []Field{
			{Name: "x", Type: &Number{Pos: fakePos()}},
			{Name: "y", Type: &Number{Pos: fakePos()}},
		},
	})
	ok, err := Comparable(&Record{Pos: fakePos(), Name: "Point"}, env)
	require.NoError(t, err)
	require.True(t, ok)

	env.AddRecord(&RecordDefinition{
		Name: "Box",
		Fields: []Field{
			{Name: "fn", Type: &Function{Pos: fakePos(), Result: &None{Pos: fakePos()}}},
		},
	})
	ok, err = Comparable(&Record{Pos: fakePos(), Name: "Box"}, env)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveChasesAliasesNotRecords(t *testing.T) {
	env := NewEnvironment()
	env.AddRecord(&RecordDefinition{Name: "Point"})
	env.AddAlias("IntOrNone", &Union{Pos: fakePos(), Lhs: &Number{Pos: fakePos()}, Rhs: &None{Pos: fakePos()}})

	resolved, err := Resolve(&Reference{Pos: fakePos(), Name: "Point"}, env)
	require.NoError(t, err)
	_, ok := resolved.(*Record)
	require.True(t, ok)

	resolved, err = Resolve(&Reference{Pos: fakePos(), Name: "IntOrNone"}, env)
	require.NoError(t, err)
	_, ok = resolved.(*Union)
	require.True(t, ok)

	_, err = Resolve(&Reference{Pos: fakePos(), Name: "Missing"}, env)
	require.Error(t, err)
}

func TestCyclicReferenceDetected(t *testing.T) {
	env := NewEnvironment()
	env.AddAlias("A", &Reference{Pos: fakePos(), Name: "B"})
	env.AddAlias("B", &Reference{Pos: fakePos(), Name: "A"})

	_, err := Resolve(&Reference{Pos: fakePos(), Name: "A"}, env)
	require.Error(t, err)
}
