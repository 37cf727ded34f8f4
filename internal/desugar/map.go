package desugar

import (
	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/synth"
)

// rewriteMap lowers a map literal to nested calls against the configured
// map runtime (spec §4.7): an entry `k: v` becomes `set(ctx, k, v, rest)`,
// a spread `...m` becomes `merge(ctx, m, rest)`, and a removal `-k` becomes
// `delete(ctx, k, rest)`, folded right-to-left from `empty()`. Every call
// threads a map context value built from the key/value types (spec's
// supplemented MapContext feature, original_source's map_context.rs)
// because the runtime map needs the key type's equal/hash pair at every
// mutation site, not just construction.
func rewriteMap(m *hir.Map, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	if cfg == nil {
		return nil, errors.MissingConfiguration(m.Pos)
	}
	pos := m.Pos
	mapType := &hirtypes.Map{Pos: pos, Key: m.KeyType, Value: m.ValueType}
	mapContext, err := buildMapContext(m.KeyType, m.ValueType, pos, env, cfg)
	if err != nil {
		return nil, err
	}

	acc := hir.Expression(&hir.Call{
		Base:     hir.Base{Pos: pos},
		Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.Map.EmptyFunctionName},
	})

	for i := len(m.Elements) - 1; i >= 0; i-- {
		el := m.Elements[i]
		switch el.Kind {
		case hir.MapElementSingle:
			key, err := rewrite(el.Key, env, cfg)
			if err != nil {
				return nil, err
			}
			value, err := rewrite(el.Value, env, cfg)
			if err != nil {
				return nil, err
			}
			acc = &hir.Call{
				Base:     hir.Base{Pos: pos},
				Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.Map.SetFunctionName},
				Args:     []hir.Expression{mapContext, key, value, acc},
			}
		case hir.MapElementMultiple:
			spread, err := rewrite(el.Map, env, cfg)
			if err != nil {
				return nil, err
			}
			acc = &hir.Call{
				Base:     hir.Base{Pos: pos},
				Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.Map.MergeFunctionName},
				Args:     []hir.Expression{mapContext, spread, acc},
			}
		case hir.MapElementRemoval:
			key, err := rewrite(el.Key, env, cfg)
			if err != nil {
				return nil, err
			}
			acc = &hir.Call{
				Base:     hir.Base{Pos: pos},
				Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.Map.DeleteFunctionName},
				Args:     []hir.Expression{mapContext, key, acc},
			}
		}
	}
	acc.SetInferredType(mapType)
	return acc, nil
}

// buildMapContext constructs the record literal carrying the key type's
// equal and hash functions, the shape every map mutation helper expects as
// its first argument.
func buildMapContext(keyType, valueType hirtypes.Type, pos hirtypes.Position, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	equalFn, err := anyEqualFunction(keyType, pos, env, cfg)
	if err != nil {
		return nil, err
	}
	hashFn, err := anyHashFunction(keyType, pos, env, cfg)
	if err != nil {
		return nil, err
	}
	return &hir.RecordConstruction{
		Base: hir.Base{Pos: pos},
		Type: &hirtypes.Record{Pos: pos, Name: "MapContext"},
		Fields: []hir.RecordFieldValue{
			{Name: "equal", Expression: equalFn},
			{Name: "hash", Expression: hashFn},
		},
	}, nil
}

// anyHashFunction wraps the field-hash rule table (shared with synth) in an
// `\($x: Any) Number` closure for use as a map context's hash function.
func anyHashFunction(keyType hirtypes.Type, pos hirtypes.Position, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	const argName = "$x"
	inner, err := synth.FieldHashExpression(&hir.Variable{Base: hir.Base{Pos: pos}, Name: argName}, keyType, pos, env, cfg)
	if err != nil {
		return nil, err
	}
	return &hir.Lambda{
		Base:       hir.Base{Pos: pos},
		Args:       []hir.Arg{{Name: argName, Type: &hirtypes.Any{Pos: pos}}},
		ResultType: &hirtypes.Number{Pos: pos},
		Body:       inner,
	}, nil
}
