package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

func pos() hirtypes.Position { return hirtypes.Position{File: "t", Line: 1, Column: 1} }

// TestRunModeCheckStopsBeforeLowering checks that ModeCheck returns without
// a MIR artifact and with the coerced module populated.
func TestRunModeCheckStopsBeforeLowering(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos()},
		ResultType: numberType,
		Body:       &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 1},
	}
	def := &hir.FunctionDefinition{Pos: pos(), Name: "one", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}

	result, err := Run(context.Background(), Config{Mode: ModeCheck}, Source{Module: m})
	require.NoError(t, err)
	require.Nil(t, result.MIR)
	require.NotNil(t, result.Artifacts.Coerced)
	require.Contains(t, result.PhaseTimings, "check_post_coerce")
	require.NotContains(t, result.PhaseTimings, "lower")
}

// TestRunModeLowerProducesMIR checks that ModeLower runs every phase and
// returns a populated MIR module for a trivial function.
func TestRunModeLowerProducesMIR(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos()},
		ResultType: numberType,
		Body:       &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 1},
	}
	def := &hir.FunctionDefinition{Pos: pos(), Name: "one", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}

	result, err := Run(context.Background(), Config{Mode: ModeLower}, Source{Module: m})
	require.NoError(t, err)
	require.NotNil(t, result.MIR)
	require.Len(t, result.MIR.FunctionDefinitions, 1)
	require.Contains(t, result.PhaseTimings, "lower")
}

// TestRunRejectsDuplicateNames checks that the validate phase short-circuits
// the pipeline before any later phase runs.
func TestRunRejectsDuplicateNames(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	lambda := func() *hir.Lambda {
		return &hir.Lambda{Base: hir.Base{Pos: pos()}, ResultType: numberType, Body: &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 1}}
	}
	m := &hir.Module{
		FunctionDefinitions: []*hir.FunctionDefinition{
			{Pos: pos(), Name: "dup", Lambda: lambda()},
			{Pos: pos(), Name: "dup", Lambda: lambda()},
		},
	}

	_, err := Run(context.Background(), Config{Mode: ModeLower}, Source{Module: m})
	require.Error(t, err)
	require.NotContains(t, err.Error(), "lower phase")
}

// TestRunHonorsCancellation checks that a cancelled context stops the
// pipeline at the next phase boundary with CancelledByDriver rather than
// running every remaining phase to completion.
func TestRunHonorsCancellation(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos()},
		ResultType: numberType,
		Body:       &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 1},
	}
	def := &hir.FunctionDefinition{Pos: pos(), Name: "one", Lambda: lambda}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{def}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, Config{Mode: ModeLower}, Source{Module: m})
	require.Error(t, err)
	require.Empty(t, result.PhaseTimings)
}
