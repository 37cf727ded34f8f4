package desugar

import (
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

const tryTempName = "$try"

// rewriteTry lowers `try e` to an IfType dispatch over e's non-error vs.
// error member (spec §4.7): bind e to a temporary, branch on the
// configured error type, returning early with the temporary on the error
// branch and yielding the temporary unchanged otherwise. Early return is
// modelled here as the branch expression itself (the MIR lowering pass
// turns this into the back end's actual early-return instruction).
func rewriteTry(op *hir.TryOperation, inner hir.Expression, env *hirtypes.Environment) (hir.Expression, error) {
	pos := op.Pos
	errType, hasErr := env.ErrorType()
	if !hasErr {
		errType = &hirtypes.Error{Pos: pos}
	}

	return &hir.Let{
		Base:     hir.Base{Pos: pos},
		Name:     tryTempName,
		HasName:  true,
		Declared: inner.InferredType(),
		Bound:    inner,
		Body: &hir.IfType{
			Base:          hir.Base{Pos: pos},
			ScrutineeName: tryTempName,
			Argument:      &hir.Variable{Base: hir.Base{Pos: pos}, Name: tryTempName},
			Branches: []hir.IfTypeBranch{{
				Type:       errType,
				Expression: &hir.Variable{Base: hir.Base{Pos: pos}, Name: tryTempName},
			}},
			Else: &hir.IfTypeElseBranch{
				Type:       op.Type,
				Expression: &hir.Variable{Base: hir.Base{Pos: pos}, Name: tryTempName},
			},
		},
	}, nil
}
