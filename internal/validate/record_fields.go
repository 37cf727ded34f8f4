package validate

import (
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

// RecordFieldPrivacy rejects every RecordConstruction/Deconstruction/Update
// whose record type definition is not open (spec §3.3, §4.2). It is
// grounded on original_source's record_field_validator.rs, which runs this
// check and the field-shape check (UnknownRecordField/MissingRecordField,
// RecordFields below) as a single traversal; they are split here because
// spec §4.2 names them as distinct validators.
func RecordFieldPrivacy(m *hir.Module, env *hirtypes.Environment) error {
	var firstErr error
	hir.VisitModule(m, func(e hir.Expression) {
		if firstErr != nil {
			return
		}
		def, pos, ok := recordDefOf(e, env)
		if !ok {
			return
		}
		if !def.Open() {
			firstErr = errors.RecordFieldPrivate(def.Name, pos)
		}
	})
	return firstErr
}

func recordDefOf(e hir.Expression, env *hirtypes.Environment) (*hirtypes.RecordDefinition, hirtypes.Position, bool) {
	switch v := e.(type) {
	case *hir.RecordConstruction:
		return defFromType(v.Type, env, v.Pos)
	case *hir.RecordUpdate:
		return defFromType(v.Type, env, v.Pos)
	case *hir.RecordDeconstruction:
		return defFromType(v.RecordType, env, v.Pos)
	default:
		return nil, hirtypes.Position{}, false
	}
}

func defFromType(t hirtypes.Type, env *hirtypes.Environment, pos hirtypes.Position) (*hirtypes.RecordDefinition, hirtypes.Position, bool) {
	if t == nil {
		return nil, pos, false
	}
	c, err := hirtypes.Canonicalize(t, env)
	if err != nil {
		return nil, pos, false
	}
	rec, ok := c.(*hirtypes.Record)
	if !ok {
		return nil, pos, false
	}
	def, ok := env.Record(rec.Name)
	if !ok {
		return nil, pos, false
	}
	return def, pos, true
}

// RecordFields checks that every field named in a RecordConstruction,
// RecordDeconstruction or RecordUpdate exists on the record's type
// definition, and that a RecordConstruction supplies every field the
// definition declares (spec §7's UnknownRecordField/MissingRecordField;
// grounded on original_source's record_field_validator.rs which performs
// this alongside privacy).
func RecordFields(m *hir.Module, env *hirtypes.Environment) error {
	var firstErr error
	hir.VisitModule(m, func(e hir.Expression) {
		if firstErr != nil {
			return
		}
		switch v := e.(type) {
		case *hir.RecordConstruction:
			def, _, ok := defFromType(v.Type, env, v.Pos)
			if !ok {
				return
			}
			firstErr = checkFieldShape(def, v.Fields, v.Pos, true)
		case *hir.RecordUpdate:
			def, _, ok := defFromType(v.Type, env, v.Pos)
			if !ok {
				return
			}
			firstErr = checkFieldShape(def, v.Fields, v.Pos, false)
		case *hir.RecordDeconstruction:
			def, _, ok := defFromType(v.RecordType, env, v.Pos)
			if !ok {
				return
			}
			if _, exists := def.FieldType(v.FieldName); !exists {
				firstErr = errors.UnknownRecordField(v.FieldName, v.Pos)
			}
		}
	})
	return firstErr
}

func checkFieldShape(def *hirtypes.RecordDefinition, fields []hir.RecordFieldValue, pos hirtypes.Position, requireAll bool) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if _, exists := def.FieldType(f.Name); !exists {
			return errors.UnknownRecordField(f.Name, pos)
		}
		seen[f.Name] = true
	}
	if requireAll {
		for _, declared := range def.Fields {
			if !seen[declared.Name] {
				return errors.MissingRecordField(declared.Name, pos)
			}
		}
	}
	return nil
}
