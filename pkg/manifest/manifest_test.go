package manifest

import (
	"testing"

	"github.com/magland/mip/pkg/errors"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"packages": [
			{
				"name": "signal-tools",
				"version": "1.2.0",
				"dependencies": ["fft-core"],
				"variants": [
					{"platform_tag": "linux_x86_64", "filename": "signal-tools-1.2.0-linux_x86_64.mhl"},
					{"platform_tag": "any", "filename": "signal-tools-1.2.0-any.mhl"}
				]
			},
			{
				"name": "fft-core",
				"version": "0.3.1",
				"filename": "fft-core-0.3.1.mhl"
			}
		]
	}`)

	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}

	entry, ok := m.Lookup("signal-tools")
	if !ok {
		t.Fatal("Lookup(signal-tools) not found")
	}
	if entry.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", entry.Version)
	}
	if len(entry.Dependencies) != 1 || entry.Dependencies[0] != "fft-core" {
		t.Errorf("Dependencies = %v, want [fft-core]", entry.Dependencies)
	}
	if len(entry.Variants) != 2 {
		t.Fatalf("Variants = %d, want 2", len(entry.Variants))
	}
	if entry.Variants[0].PlatformTag != "linux_x86_64" {
		t.Errorf("Variants[0].PlatformTag = %q, want linux_x86_64", entry.Variants[0].PlatformTag)
	}
}

func TestParseSingleFilenameBecomesAnyVariant(t *testing.T) {
	data := []byte(`{"packages": [{"name": "legacy", "version": "1.0", "filename": "legacy-1.0.mhl"}]}`)

	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	entry, ok := m.Lookup("legacy")
	if !ok {
		t.Fatal("Lookup(legacy) not found")
	}
	if len(entry.Variants) != 1 {
		t.Fatalf("Variants = %d, want 1", len(entry.Variants))
	}
	if entry.Variants[0].PlatformTag != TagAny {
		t.Errorf("PlatformTag = %q, want %q", entry.Variants[0].PlatformTag, TagAny)
	}
	if entry.Variants[0].Filename != "legacy-1.0.mhl" {
		t.Errorf("Filename = %q, want legacy-1.0.mhl", entry.Variants[0].Filename)
	}
}

func TestParseNamesPreserveOrder(t *testing.T) {
	data := []byte(`{"packages": [
		{"name": "zeta", "version": "1", "filename": "zeta.mhl"},
		{"name": "alpha", "version": "1", "filename": "alpha.mhl"},
		{"name": "mu", "version": "1", "filename": "mu.mhl"}
	]}`)

	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	want := []string{"zeta", "alpha", "mu"}
	got := m.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid json", data: `{"packages": [`},
		{name: "missing name", data: `{"packages": [{"version": "1.0", "filename": "x.mhl"}]}`},
		{name: "duplicate name", data: `{"packages": [
			{"name": "dup", "version": "1.0", "filename": "a.mhl"},
			{"name": "dup", "version": "2.0", "filename": "b.mhl"}
		]}`},
		{name: "no artifact", data: `{"packages": [{"name": "bare", "version": "1.0"}]}`},
		{name: "variant without filename", data: `{"packages": [
			{"name": "broken", "version": "1.0", "variants": [{"platform_tag": "any"}]}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidManifest)
			}
		})
	}
}

func TestLookupMissing(t *testing.T) {
	m, err := Parse([]byte(`{"packages": []}`))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if _, ok := m.Lookup("nope"); ok {
		t.Error("Lookup(nope) = ok, want miss")
	}
}
