// Package wire is the driver-facing JSON interchange format: a tagged-union
// codec for hirtypes.Type and hir.Module, used by cmd/corehirc to accept
// input and print results. It exists because spec §1 puts "parsing a
// concrete surface syntax" out of the core's scope, but a command-line
// driver still needs some way to hand the core a module — JSON is the
// format spec §6.3 names as acceptable for the interface artifact, so the
// same encoding is reused here for input. This package covers the node
// kinds a hand-written test fixture realistically exercises; anything
// beyond that returns a descriptive error rather than guessing.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/position"
)

// TypeNode is the wire format for hirtypes.Type: a "kind" tag plus
// kind-specific fields, mirroring the shape of the type-id grammar spec §3.5
// already defines (fn/list/map/union/rec/atomic keywords).
type TypeNode struct {
	Kind   string     `json:"kind"`
	Name   string     `json:"name,omitempty"`
	Args   []TypeNode `json:"args,omitempty"`
	Result *TypeNode  `json:"result,omitempty"`
	Elem   *TypeNode  `json:"elem,omitempty"`
	Key    *TypeNode  `json:"key,omitempty"`
	Value  *TypeNode  `json:"value,omitempty"`
	Lhs    *TypeNode  `json:"lhs,omitempty"`
	Rhs    *TypeNode  `json:"rhs,omitempty"`
	Source *TypeNode  `json:"source,omitempty"`
}

// DecodeType converts a TypeNode into a hirtypes.Type. Every synthesized
// node gets a fresh synthetic position, since the wire format carries no
// source location (spec §3: position never participates in structural
// equality, so this is sound for every downstream analysis).
func DecodeType(n *TypeNode) (hirtypes.Type, error) {
	if n == nil {
		return nil, fmt.Errorf("wire: nil type node")
	}
	pos := position.Synthesize()
	switch n.Kind {
	case "bool", "boolean":
		return &hirtypes.Boolean{Pos: pos}, nil
	case "none":
		return &hirtypes.None{Pos: pos}, nil
	case "num", "number":
		return &hirtypes.Number{Pos: pos}, nil
	case "str", "string":
		return &hirtypes.String{Pos: pos}, nil
	case "any":
		return &hirtypes.Any{Pos: pos}, nil
	case "err", "error":
		source, err := DecodeType(n.Source)
		if err != nil {
			return nil, err
		}
		return &hirtypes.Error{Pos: pos, Source: source}, nil
	case "rec", "record":
		return &hirtypes.Record{Pos: pos, Name: n.Name}, nil
	case "ref", "reference":
		return &hirtypes.Reference{Pos: pos, Name: n.Name}, nil
	case "fn", "function":
		args := make([]hirtypes.Type, len(n.Args))
		for i := range n.Args {
			a, err := DecodeType(&n.Args[i])
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		result, err := DecodeType(n.Result)
		if err != nil {
			return nil, err
		}
		return &hirtypes.Function{Pos: pos, Args: args, Result: result}, nil
	case "list":
		elem, err := DecodeType(n.Elem)
		if err != nil {
			return nil, err
		}
		return &hirtypes.List{Pos: pos, Element: elem}, nil
	case "map":
		key, err := DecodeType(n.Key)
		if err != nil {
			return nil, err
		}
		value, err := DecodeType(n.Value)
		if err != nil {
			return nil, err
		}
		return &hirtypes.Map{Pos: pos, Key: key, Value: value}, nil
	case "union":
		lhs, err := DecodeType(n.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := DecodeType(n.Rhs)
		if err != nil {
			return nil, err
		}
		return &hirtypes.Union{Pos: pos, Lhs: lhs, Rhs: rhs}, nil
	default:
		return nil, fmt.Errorf("wire: unknown type kind %q", n.Kind)
	}
}

// DecodeTypeJSON parses raw JSON bytes directly into a hirtypes.Type.
func DecodeTypeJSON(raw json.RawMessage) (hirtypes.Type, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var n TypeNode
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	return DecodeType(&n)
}
