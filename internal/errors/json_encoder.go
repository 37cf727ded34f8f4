package errors

import "encoding/json"

// jsonDiagnostic is the wire shape for a Diagnostic, matching the
// teacher's AI-friendly structured error reporting convention
// (internal/errors/json_encoder.go): stable field names, no nested
// interface{} payloads.
type jsonDiagnostic struct {
	Code     string `json:"code"`
	Kind     string `json:"kind"`
	Position string `json:"position"`
	Position2 string `json:"position2,omitempty"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type,omitempty"`
	Message  string `json:"message"`
}

// EncodeJSON renders a Diagnostic as the stable JSON shape consumed by
// tooling (the corehirc CLI and any downstream driver).
func EncodeJSON(d *Diagnostic) ([]byte, error) {
	out := jsonDiagnostic{
		Code:     d.Code,
		Kind:     string(d.Kind),
		Position: d.Position.String(),
		Name:     d.Name,
		Type:     d.TypeDesc,
		Message:  d.Message,
	}
	if d.Kind == KindTypesNotMatched {
		out.Position2 = d.Position2.String()
	}
	return json.MarshalIndent(out, "", "  ")
}

// DecodeJSON parses a previously encoded diagnostic back into its wire
// shape, for tests and for drivers that persist diagnostics.
func DecodeJSON(data []byte) (*jsonDiagnostic, error) {
	var out jsonDiagnostic
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
