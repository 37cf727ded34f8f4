package iface

import (
	"strings"
	"testing"

	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
)

func pos() hirtypes.Position { return hirtypes.Position{File: "t", Line: 1, Column: 1} }

func TestNewIfaceEmpty(t *testing.T) {
	i := New("math/gcd")
	if i.Module != "math/gcd" {
		t.Errorf("Module = %q, want %q", i.Module, "math/gcd")
	}
	if i.Schema != Schema {
		t.Errorf("Schema = %q, want %q", i.Schema, Schema)
	}
	if len(i.Exports) != 0 {
		t.Errorf("len(Exports) = %d, want 0", len(i.Exports))
	}
}

func TestAddExportRoundTrip(t *testing.T) {
	i := New("test/module")
	numberType := &hirtypes.Number{Pos: pos()}
	ft := &hirtypes.Function{Pos: pos(), Args: []hirtypes.Type{numberType}, Result: numberType}
	i.AddExport("double", ft)

	got, ok := i.GetExport("double")
	if !ok {
		t.Fatal("GetExport(\"double\") returned false, want true")
	}
	if got.Name != "double" {
		t.Errorf("Name = %q, want %q", got.Name, "double")
	}
}

func TestBuildOnlyIncludesPublicDeclarations(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	public := &hir.FunctionDefinition{
		Pos: pos(), Name: "pub", Public: true,
		Lambda: &hir.Lambda{Base: hir.Base{Pos: pos()}, ResultType: numberType, Body: &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 1}},
	}
	private := &hir.FunctionDefinition{
		Pos: pos(), Name: "priv", Public: false,
		Lambda: &hir.Lambda{Base: hir.Base{Pos: pos()}, ResultType: numberType, Body: &hir.NumberLiteral{Base: hir.Base{Pos: pos()}, Value: 2}},
	}
	m := &hir.Module{FunctionDefinitions: []*hir.FunctionDefinition{public, private}}
	env := m.BuildEnvironment()

	i := Build("test/module", m, env)
	if _, ok := i.GetExport("pub"); !ok {
		t.Error("expected \"pub\" to be exported")
	}
	if _, ok := i.GetExport("priv"); ok {
		t.Error("did not expect \"priv\" to be exported")
	}
	if i.Digest == "" {
		t.Error("expected a non-empty digest after Build")
	}
}

func TestToNormalizedJSONIsSortedAndStable(t *testing.T) {
	numberType := &hirtypes.Number{Pos: pos()}
	i := New("m")
	i.AddExport("b", &hirtypes.Function{Pos: pos(), Result: numberType})
	i.AddExport("a", &hirtypes.Function{Pos: pos(), Result: numberType})
	i.Digest = Digest(i)

	first, err := i.ToNormalizedJSON()
	if err != nil {
		t.Fatalf("ToNormalizedJSON: %v", err)
	}
	second, err := i.ToNormalizedJSON()
	if err != nil {
		t.Fatalf("ToNormalizedJSON: %v", err)
	}
	if string(first) != string(second) {
		t.Error("ToNormalizedJSON is not deterministic across calls")
	}
	aIdx := strings.Index(string(first), `"a"`)
	bIdx := strings.Index(string(first), `"b"`)
	if aIdx == -1 || bIdx == -1 || aIdx > bIdx {
		t.Error("expected funcs to be sorted alphabetically, \"a\" before \"b\"")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	i := New("m")
	i.AddExport("f", &hirtypes.Function{Pos: pos(), Result: &hirtypes.Number{Pos: pos()}})
	raw, err := i.ToNormalizedJSON()
	if err != nil {
		t.Fatalf("ToNormalizedJSON: %v", err)
	}

	compressed, err := WriteCache(i)
	if err != nil {
		t.Fatalf("WriteCache: %v", err)
	}
	decompressed, err := ReadCache(compressed)
	if err != nil {
		t.Fatalf("ReadCache: %v", err)
	}
	if string(decompressed) != string(raw) {
		t.Error("ReadCache(WriteCache(i)) did not round-trip to the original JSON")
	}
}
