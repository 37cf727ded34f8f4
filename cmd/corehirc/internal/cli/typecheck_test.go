package cli

import "testing"

func TestModuleName(t *testing.T) {
	cases := map[string]string{
		"foo.json":          "foo",
		"/a/b/bar.json":     "bar",
		"baz":                "baz",
	}
	for in, want := range cases {
		if got := moduleName(in); got != want {
			t.Errorf("moduleName(%q) = %q, want %q", in, got, want)
		}
	}
}
