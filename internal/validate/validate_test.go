package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

func pos() hirtypes.Position { return hirtypes.Position{File: "t", Line: 1, Column: 1} }

func numUnionErr() hirtypes.Type {
	return &hirtypes.Union{Pos: pos(), Lhs: &hirtypes.Number{Pos: pos()}, Rhs: &hirtypes.Error{Pos: pos()}}
}

func newEnvWithError() *hirtypes.Environment {
	env := hirtypes.NewEnvironment()
	env.SetErrorType(&hirtypes.Error{Pos: pos()})
	return env
}

// TestTryOperationInList is scenario S6 of the specification: `[try e]`
// must be rejected with TryOperationInList.
func TestTryOperationInList(t *testing.T) {
	env := newEnvWithError()
	list := &hir.List{
		Base:        hir.Base{Pos: pos()},
		ElementType: &hirtypes.Any{Pos: pos()},
		Elements: []hir.ListElement{
			{Kind: hir.ListElementSingle, Expression: &hir.TryOperation{
				Base:       hir.Base{Pos: pos()},
				Expression: &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "e"},
			}},
		},
	}
	lambda := &hir.Lambda{ResultType: numUnionErr(), Body: list}
	def := &hir.FunctionDefinition{Name: "f", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}

	err := TryPlacement(m, env)
	require.Error(t, err)
	diag, ok := err.(*errors.Diagnostic)
	require.True(t, ok)
	require.Equal(t, errors.KindTryOperationInList, diag.Kind)
}

func TestTryOperationValidWhenResultSubsumesError(t *testing.T) {
	env := newEnvWithError()
	tryExpr := &hir.TryOperation{
		Base:       hir.Base{Pos: pos()},
		Expression: &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "e"},
	}
	lambda := &hir.Lambda{ResultType: numUnionErr(), Body: tryExpr}
	def := &hir.FunctionDefinition{Name: "f", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}

	require.NoError(t, TryPlacement(m, env))
}

func TestTryOperationInvalidWhenResultDoesNotSubsumeError(t *testing.T) {
	env := newEnvWithError()
	tryExpr := &hir.TryOperation{
		Base:       hir.Base{Pos: pos()},
		Expression: &hir.Variable{Base: hir.Base{Pos: pos()}, Name: "e"},
	}
	lambda := &hir.Lambda{ResultType: &hirtypes.Number{Pos: pos()}, Body: tryExpr}
	def := &hir.FunctionDefinition{Name: "f", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}

	err := TryPlacement(m, env)
	require.Error(t, err)
	diag := err.(*errors.Diagnostic)
	require.Equal(t, errors.KindInvalidTryOperation, diag.Kind)
}

func TestDuplicateNameDetected(t *testing.T) {
	m := &hir.Module{
		FunctionDefinitions: []*hir.FunctionDefinition{
			{Name: "foo", Lambda: &hir.Lambda{Body: &hir.NoneLiteral{}}},
		},
		FunctionDeclarations: []*hir.FunctionDeclaration{
			{Name: "foo"},
		},
	}
	err := DuplicateNames(m)
	require.Error(t, err)
	require.Equal(t, errors.KindDuplicateName, err.(*errors.Diagnostic).Kind)
}

func TestRecordFieldPrivacyRejectsNonOpenExternalRecord(t *testing.T) {
	env := hirtypes.NewEnvironment()
	env.AddRecord(&hirtypes.RecordDefinition{
		Name:     "Sealed",
		External: true,
		Public:   true,
		Declared: false, // external + public but NOT declared open => not open
	})
	construction := &hir.RecordConstruction{
		Base: hir.Base{Pos: pos()},
		Type: &hirtypes.Record{Pos: pos(), Name: "Sealed"},
	}
	m := &hir.Module{
		FunctionDefinitions: []*hir.FunctionDefinition{
			{Name: "f", Lambda: &hir.Lambda{Body: construction}},
		},
	}
	err := RecordFieldPrivacy(m, env)
	require.Error(t, err)
	require.Equal(t, errors.KindRecordFieldPrivate, err.(*errors.Diagnostic).Kind)
}

func TestRecordFieldsRejectsUnknownField(t *testing.T) {
	env := hirtypes.NewEnvironment()
	env.AddRecord(&hirtypes.RecordDefinition{
		Name:   "Point",
		Fields: []hirtypes.Field{{Name: "x", Type: &hirtypes.Number{Pos: pos()}}},
	})
	construction := &hir.RecordConstruction{
		Base: hir.Base{Pos: pos()},
		Type: &hirtypes.Record{Pos: pos(), Name: "Point"},
		Fields: []hir.RecordFieldValue{
			{Name: "z", Expression: &hir.NumberLiteral{Value: 1}},
		},
	}
	m := &hir.Module{
		FunctionDefinitions: []*hir.FunctionDefinition{
			{Name: "f", Lambda: &hir.Lambda{Body: construction}},
		},
	}
	err := RecordFields(m, env)
	require.Error(t, err)
	require.Equal(t, errors.KindUnknownRecordField, err.(*errors.Diagnostic).Kind)
}
