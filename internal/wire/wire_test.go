package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/position"
)

func TestDecodeModuleSimpleFunction(t *testing.T) {
	raw := []byte(`{
		"functions": [
			{
				"name": "addOne",
				"public": true,
				"lambda": {
					"kind": "lambda",
					"args": [{"name": "x", "type": {"kind": "number"}}],
					"resultType": {"kind": "number"},
					"body": {
						"kind": "arithmetic",
						"operator": "add",
						"lhs": {"kind": "var", "name": "x"},
						"rhs": {"kind": "number", "number": 1}
					}
				}
			}
		]
	}`)

	m, err := DecodeModule(raw)
	require.NoError(t, err)
	require.Len(t, m.FunctionDefinitions, 1)
	def := m.FunctionDefinitions[0]
	require.Equal(t, "addOne", def.Name)
	require.True(t, def.Public)
	require.Len(t, def.Lambda.Args, 1)
	op, ok := def.Lambda.Body.(*hir.ArithmeticOperation)
	require.True(t, ok)
	require.Equal(t, hir.ArithmeticAdd, op.Operator)
}

func TestDecodeModuleRejectsUnknownKind(t *testing.T) {
	raw := []byte(`{"functions":[{"name":"f","lambda":{"kind":"lambda","resultType":{"kind":"number"},"body":{"kind":"bogus"}}}]}`)
	_, err := DecodeModule(raw)
	require.Error(t, err)
}

// TestDecodeModuleStructuralEquality decodes the same wire document twice
// and checks the resulting trees are structurally identical. Every call to
// DecodeExpr/DecodeType mints a fresh position.Synthesize() position with a
// random UUID (position.ID), so a plain reflect.DeepEqual or require.Equal
// would never match two independent decodes; go-cmp with Position ignored
// entirely is the right tool, matching position.go's own rationale for
// depending on go-cmp.
func TestDecodeModuleStructuralEquality(t *testing.T) {
	raw := []byte(`{
		"functions": [
			{
				"name": "addOne",
				"public": true,
				"lambda": {
					"kind": "lambda",
					"args": [{"name": "x", "type": {"kind": "number"}}],
					"resultType": {"kind": "number"},
					"body": {
						"kind": "arithmetic",
						"operator": "add",
						"lhs": {"kind": "var", "name": "x"},
						"rhs": {"kind": "number", "number": 1}
					}
				}
			}
		]
	}`)

	m1, err := DecodeModule(raw)
	require.NoError(t, err)
	m2, err := DecodeModule(raw)
	require.NoError(t, err)

	diff := cmp.Diff(m1, m2, cmpopts.IgnoreTypes(position.Position{}))
	require.Empty(t, diff, "two decodes of the same wire document should be structurally identical modulo synthesized positions")
}

func TestDecodeTypeUnion(t *testing.T) {
	n := &TypeNode{
		Kind: "union",
		Lhs:  &TypeNode{Kind: "number"},
		Rhs:  &TypeNode{Kind: "none"},
	}
	typ, err := DecodeType(n)
	require.NoError(t, err)
	require.Equal(t, "number | none", typ.String())
}
