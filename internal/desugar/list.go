package desugar

import (
	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// rewriteList lowers a list literal to nested calls against the configured
// list runtime (spec §4.7): `[]` becomes `empty()`; `[x, ...xs]` becomes
// `prepend(Thunk(coerce(x, Any)), xs)` (the coercion is omitted when the
// element type is already Any); a spread element `...xs` becomes
// `concatenate(lazy(Thunk(xs)), rest)`. The fold runs right-to-left so each
// element's "rest" is the already-built tail.
func rewriteList(l *hir.List, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	if cfg == nil {
		return nil, errors.MissingConfiguration(l.Pos)
	}
	pos := l.Pos
	listType := &hirtypes.List{Pos: pos, Element: l.ElementType}

	acc := hir.Expression(&hir.Call{
		Base:     hir.Base{Pos: pos},
		Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.List.EmptyFunctionName},
	})

	for i := len(l.Elements) - 1; i >= 0; i-- {
		el := l.Elements[i]
		rewritten, err := rewrite(el.Expression, env, cfg)
		if err != nil {
			return nil, err
		}
		switch el.Kind {
		case hir.ListElementSingle:
			elem := hir.Expression(&hir.TypeCoercion{Base: hir.Base{Pos: pos}, From: l.ElementType, To: &hirtypes.Any{Pos: pos}, Argument: rewritten})
			if _, isAny := l.ElementType.(*hirtypes.Any); isAny {
				elem = rewritten
			}
			thunk := &hir.Thunk{Base: hir.Base{Pos: pos}, BodyType: &hirtypes.Any{Pos: pos}, Expr: elem}
			acc = &hir.Call{
				Base:     hir.Base{Pos: pos},
				Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.List.PrependFunctionName},
				Args:     []hir.Expression{thunk, acc},
			}
		case hir.ListElementMultiple:
			lazyThunk := &hir.Thunk{Base: hir.Base{Pos: pos}, BodyType: listType, Expr: rewritten}
			lazySpread := &hir.Call{
				Base:     hir.Base{Pos: pos},
				Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.List.LazyFunctionName},
				Args:     []hir.Expression{lazyThunk},
			}
			acc = &hir.Call{
				Base:     hir.Base{Pos: pos},
				Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.List.ConcatenateFunctionName},
				Args:     []hir.Expression{lazySpread, acc},
			}
		}
	}
	acc.SetInferredType(listType)
	return acc, nil
}
