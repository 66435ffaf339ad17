package version

import (
	"strings"
	"testing"
)

// FuzzParse tests the tag parser with fuzzing.
// Run with: go test -fuzz=FuzzParse -fuzztime=30s
func FuzzParse(f *testing.F) {
	seeds := []struct {
		tag    string
		prefix string
	}{
		// Valid tags
		{"v1.0.0", "v"},
		{"v0.3.90", "v"},
		{"v0.3.90-rc.4", "v"},
		{"Release Version 0.3.90", "Release Version "},
		{"1.2.3", ""},
		{"app-v1.2.3-pre-alpha.0", "app-v"},
		// Invalid tags
		{"", ""},
		{"v", "v"},
		{"v1", "v"},
		{"v1.0", "v"},
		{"v1.0.0.0", "v"},
		{"va.b.c", "v"},
		{"v01.0.0", "v"},
		{"v1.0.0-", "v"},
		{"v1.0.0-rc", "v"},
		{"v1.0.0-rc.01", "v"},
		{"v1.0.0+build", "v"},
		{"v1..0", "v"},
		{"v１.２.３", "v"},
		{"v1.0.0-新版本.1", "v"},
		{" v1.0.0", "v"},
		{"v1.0.0\n", "v"},
		{"1.0.0; rm -rf /", ""},
	}

	for _, seed := range seeds {
		f.Add(seed.tag, seed.prefix)
	}

	f.Fuzz(func(t *testing.T, tag, prefix string) {
		v, err := Parse(tag, prefix)
		if err != nil {
			return
		}

		if !strings.HasPrefix(tag, prefix) {
			t.Errorf("Parse(%q, %q) accepted a tag without the prefix", tag, prefix)
		}

		// Every accepted tag formats back to itself.
		if got := v.String(); got != tag {
			t.Errorf("Parse(%q, %q).String() = %q", tag, prefix, got)
		}

		again, err := Parse(v.String(), prefix)
		if err != nil {
			t.Fatalf("re-parsing %q failed: %v", v.String(), err)
		}
		if again.String() != v.String() || !again.Equal(v) {
			t.Errorf("round trip changed %v to %v", v, again)
		}

		// Increments never go backwards.
		if !v.IncrementPatch().GreaterThan(v) && v.Patch() != ^uint64(0) {
			t.Errorf("IncrementPatch(%v) did not increase", v)
		}
	})
}
