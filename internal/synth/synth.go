// Package synth generates the per-record `$equal` and `$hash` functions
// used by desugared polymorphic equality and hashing (spec §4.6). It is
// grounded directly on original_source's record_equal_function.rs and
// record_hash_function.rs: external records receive a FunctionDeclaration
// only (the definition lives in whatever module declares them `external`);
// every other comparable record receives a full FunctionDefinition whose
// body right-to-left folds a chain of field comparisons (equal) or hash
// combination calls (hash), seeded by a fixed-width identity hash of the
// record's own name.
package synth

import (
	"hash/fnv"
	"math"

	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

const (
	lhsName    = "$lhs"
	rhsName    = "$rhs"
	recordName = "$record"
)

// EqualFunctionName is the conventional name of a record's equality
// helper, shared by the desugar package when it rewrites `==`/`!=` over a
// record-typed operand.
func EqualFunctionName(recordTypeName string) string { return recordTypeName + ".$equal" }

// HashFunctionName is the conventional name of a record's hash helper.
func HashFunctionName(recordTypeName string) string { return recordTypeName + ".$hash" }

// Module adds an `$equal`/`$hash` declaration or definition for every
// comparable record type in m. Records whose field set is not comparable
// (contains Any, Error, Function, or a non-comparable nested record) are
// skipped entirely: desugaring raises RecordNotComparable lazily, at the
// point an `==`/hash is actually attempted against them (spec's
// supplemented diagnostic, §4.7).
func Module(m *hir.Module, env *hirtypes.Environment, cfg *config.TypeConfiguration) (*hir.Module, error) {
	out := m.Clone()
	var declarations []*hir.FunctionDeclaration
	declarations = append(declarations, m.FunctionDeclarations...)
	var definitions []*hir.FunctionDefinition
	definitions = append(definitions, m.FunctionDefinitions...)

	for _, def := range m.TypeDefinitions {
		recordType := &hirtypes.Record{Pos: def.Pos, Name: def.Name}
		comparable, err := hirtypes.Comparable(recordType, env)
		if err != nil {
			return nil, err
		}
		if !comparable {
			continue
		}
		if def.External {
			declarations = append(declarations, equalDeclaration(def, recordType))
			if cfg != nil {
				declarations = append(declarations, hashDeclaration(def, recordType))
			}
			continue
		}
		definitions = append(definitions, equalDefinition(def, recordType))
		if cfg != nil {
			hd, err := hashDefinition(def, recordType, env, cfg)
			if err != nil {
				return nil, err
			}
			definitions = append(definitions, hd)
		}
	}

	out.FunctionDeclarations = declarations
	out.FunctionDefinitions = definitions
	return out, nil
}

func equalDeclaration(def *hirtypes.RecordDefinition, recordType *hirtypes.Record) *hir.FunctionDeclaration {
	name := EqualFunctionName(def.Name)
	return &hir.FunctionDeclaration{
		Pos:  def.Pos,
		Name: name,
		Type: &hirtypes.Function{
			Pos:    def.Pos,
			Args:   []hirtypes.Type{recordType, recordType},
			Result: &hirtypes.Boolean{Pos: def.Pos},
		},
	}
}

func hashDeclaration(def *hirtypes.RecordDefinition, recordType *hirtypes.Record) *hir.FunctionDeclaration {
	name := HashFunctionName(def.Name)
	return &hir.FunctionDeclaration{
		Pos:  def.Pos,
		Name: name,
		Type: &hirtypes.Function{
			Pos:    def.Pos,
			Args:   []hirtypes.Type{recordType},
			Result: &hirtypes.Number{Pos: def.Pos},
		},
	}
}

// equalDefinition builds, field by field from the last to the first, the
// nested `If(fieldsEqual, rest, false)` chain described by
// record_equal_function.rs: two records are equal exactly when every field
// compares equal pairwise, short-circuiting to false at the first mismatch.
func equalDefinition(def *hirtypes.RecordDefinition, recordType *hirtypes.Record) *hir.FunctionDefinition {
	pos := def.Pos
	body := hir.Expression(&hir.BooleanLiteral{Base: hir.Base{Pos: pos}, Value: true})
	for i := len(def.Fields) - 1; i >= 0; i-- {
		field := def.Fields[i]
		eq := &hir.EqualityOperation{
			Base:     hir.Base{Pos: pos},
			Type:     field.Type,
			Operator: hir.EqualityEqual,
			Lhs: &hir.RecordDeconstruction{
				Base:       hir.Base{Pos: pos},
				RecordType: recordType,
				Record:     &hir.Variable{Base: hir.Base{Pos: pos}, Name: lhsName},
				FieldName:  field.Name,
			},
			Rhs: &hir.RecordDeconstruction{
				Base:       hir.Base{Pos: pos},
				RecordType: recordType,
				Record:     &hir.Variable{Base: hir.Base{Pos: pos}, Name: rhsName},
				FieldName:  field.Name,
			},
		}
		body = &hir.If{
			Base: hir.Base{Pos: pos},
			Cond: eq,
			Then: body,
			Else: &hir.BooleanLiteral{Base: hir.Base{Pos: pos}, Value: false},
		}
	}
	lambda := &hir.Lambda{
		Base: hir.Base{Pos: pos},
		Args: []hir.Arg{
			{Name: lhsName, Type: recordType},
			{Name: rhsName, Type: recordType},
		},
		ResultType: &hirtypes.Boolean{Pos: pos},
		Body:       body,
	}
	name := EqualFunctionName(def.Name)
	return &hir.FunctionDefinition{Pos: pos, Name: name, Public: true, Lambda: lambda}
}

// hashDefinition folds the record's fields right-to-left into nested calls
// to the configured combine function, seeded by a fixed 64-bit identity
// hash of the record's own name (spec §9 note 2: FNV-1a, a standard
// non-cryptographic 64-bit hash, avoids the collision hazard of re-hashing
// on every compile by fixing the seed to the name alone).
func hashDefinition(def *hirtypes.RecordDefinition, recordType *hirtypes.Record, env *hirtypes.Environment, cfg *config.TypeConfiguration) (*hir.FunctionDefinition, error) {
	pos := def.Pos
	seed := identityHash(def.Name)
	combineType := &hirtypes.Function{
		Pos:    pos,
		Args:   []hirtypes.Type{&hirtypes.Number{Pos: pos}, &hirtypes.Number{Pos: pos}},
		Result: &hirtypes.Number{Pos: pos},
	}

	body := hir.Expression(&hir.NumberLiteral{Base: hir.Base{Pos: pos}, Value: seed})
	for i := len(def.Fields) - 1; i >= 0; i-- {
		field := def.Fields[i]
		fieldHash, err := FieldHashExpression(&hir.RecordDeconstruction{
			Base:       hir.Base{Pos: pos},
			RecordType: recordType,
			Record:     &hir.Variable{Base: hir.Base{Pos: pos}, Name: recordName},
			FieldName:  field.Name,
		}, field.Type, pos, env, cfg)
		if err != nil {
			return nil, err
		}
		body = &hir.Call{
			Base:         hir.Base{Pos: pos},
			FunctionType: combineType,
			Function:     &hir.Variable{Base: hir.Base{Pos: pos}, Name: cfg.Map.Hash.CombineFunctionName},
			Args:         []hir.Expression{body, fieldHash},
		}
	}
	lambda := &hir.Lambda{
		Base:       hir.Base{Pos: pos},
		Args:       []hir.Arg{{Name: recordName, Type: recordType}},
		ResultType: &hirtypes.Number{Pos: pos},
		Body:       body,
	}
	name := HashFunctionName(def.Name)
	return &hir.FunctionDefinition{Pos: pos, Name: name, Public: true, Lambda: lambda}, nil
}

// FieldHashExpression computes the hash sub-expression for a single
// field's value, dispatching on its type the way
// hash_calculation/expression.rs does. It is exported so desugar's map
// element-hashing shares the same per-type rules.
func FieldHashExpression(value hir.Expression, t hirtypes.Type, pos hirtypes.Position, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	if cfg == nil {
		return nil, errors.MissingConfiguration(pos)
	}
	switch v := t.(type) {
	case *hirtypes.Boolean:
		return &hir.If{
			Base: hir.Base{Pos: pos},
			Cond: value,
			Then: &hir.NumberLiteral{Base: hir.Base{Pos: pos}, Value: 1},
			Else: &hir.NumberLiteral{Base: hir.Base{Pos: pos}, Value: 2},
		}, nil
	case *hirtypes.None:
		return &hir.NumberLiteral{Base: hir.Base{Pos: pos}, Value: 0}, nil
	case *hirtypes.Number:
		return callOne(cfg.Map.Hash.NumberHashFunctionName, value, pos), nil
	case *hirtypes.String:
		return callOne(cfg.Map.Hash.StringHashFunctionName, value, pos), nil
	case *hirtypes.List:
		_ = v
		return callOne(cfg.Map.Hash.ListHashFunctionName, value, pos), nil
	case *hirtypes.Map:
		return callOne(cfg.Map.Hash.MapHashFunctionName, value, pos), nil
	case *hirtypes.Record:
		return &hir.Call{
			Base: hir.Base{Pos: pos},
			FunctionType: &hirtypes.Function{
				Pos: pos, Args: []hirtypes.Type{v}, Result: &hirtypes.Number{Pos: pos},
			},
			Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: HashFunctionName(v.Name)},
			Args:     []hir.Expression{value},
		}, nil
	case *hirtypes.Union:
		return unionFieldHash(v, value, pos, env, cfg)
	case *hirtypes.Reference:
		resolved, err := hirtypes.Resolve(v, env)
		if err != nil {
			return nil, err
		}
		return FieldHashExpression(value, resolved, pos, env, cfg)
	default:
		return nil, errors.TypeNotComparable(pos, t.String())
	}
}

// unionFieldHash builds an IfType dispatch over the union's members,
// hashing value's dynamic member type — analogous to desugar's unionEqual,
// since spec §4.6/§4.7 requires hashing to follow the same type-dispatch
// shape as equality.
func unionFieldHash(u *hirtypes.Union, value hir.Expression, pos hirtypes.Position, env *hirtypes.Environment, cfg *config.TypeConfiguration) (hir.Expression, error) {
	members, err := hirtypes.UnionMembers(u, env)
	if err != nil {
		return nil, err
	}
	branches := make([]hir.IfTypeBranch, len(members))
	for i, member := range members {
		inner, err := FieldHashExpression(&hir.Variable{Base: hir.Base{Pos: pos}, Name: unionFieldHashScrutineeName}, member, pos, env, cfg)
		if err != nil {
			return nil, err
		}
		branches[i] = hir.IfTypeBranch{Type: member, Expression: inner}
	}
	return &hir.IfType{
		Base:          hir.Base{Pos: pos},
		ScrutineeName: unionFieldHashScrutineeName,
		Argument:      value,
		Branches:      branches,
	}, nil
}

const unionFieldHashScrutineeName = "$field"

func callOne(fn string, arg hir.Expression, pos hirtypes.Position) hir.Expression {
	return &hir.Call{
		Base:     hir.Base{Pos: pos},
		Function: &hir.Variable{Base: hir.Base{Pos: pos}, Name: fn},
		Args:     []hir.Expression{arg},
	}
}

// identityHash reinterprets a 64-bit FNV-1a digest as an IEEE-754 float64
// via bit-pattern reinterpretation (not numeric conversion), matching
// f64::from_bits(hash64(name)) in original_source's record_hash_function.rs.
func identityHash(name string) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return math.Float64frombits(h.Sum64())
}
