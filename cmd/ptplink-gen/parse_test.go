package main

import (
	"path/filepath"
	"runtime"
	"testing"
)

// registryPath returns the absolute path to docs/codes/ptp.yaml relative
// to this test file.
func registryPath(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "docs", "codes", "ptp.yaml")
}

func TestParseRegistry_Minimal(t *testing.T) {
	yaml := `
package: wire
groups:
  - prefix: Op
    type: OpCode
    kind: operation code
    short: operation
    codes:
      - { name: Undefined, code: 0x1000, desc: "undefined operation" }
      - { name: GetDeviceInfo, code: 0x1001, desc: "read device capabilities and identity" }
`
	reg, err := ParseRegistry([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseRegistry failed: %v", err)
	}

	if reg.Package != "wire" {
		t.Errorf("package = %q, want wire", reg.Package)
	}
	if len(reg.Groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(reg.Groups))
	}

	g := reg.Groups[0]
	if g.Prefix != "Op" {
		t.Errorf("prefix = %q, want Op", g.Prefix)
	}
	if g.Type != "OpCode" {
		t.Errorf("type = %q, want OpCode", g.Type)
	}
	if g.Kind != "operation code" {
		t.Errorf("kind = %q, want %q", g.Kind, "operation code")
	}
	if g.Short != "operation" {
		t.Errorf("short = %q, want operation", g.Short)
	}
	if len(g.Codes) != 2 {
		t.Fatalf("len(codes) = %d, want 2", len(g.Codes))
	}
	if g.Codes[0].Name != "Undefined" || g.Codes[0].Code != 0x1000 {
		t.Errorf("codes[0] = %+v, want Undefined/0x1000", g.Codes[0])
	}
	if g.Codes[1].Code != 0x1001 {
		t.Errorf("codes[1].code = 0x%04X, want 0x1001", g.Codes[1].Code)
	}
	if g.Codes[1].Desc != "read device capabilities and identity" {
		t.Errorf("codes[1].desc = %q", g.Codes[1].Desc)
	}
}

func TestParseRegistry_MissingPackage(t *testing.T) {
	yaml := `
groups:
  - prefix: Op
    type: OpCode
    kind: operation code
    short: operation
    codes:
      - { name: Undefined, code: 0x1000 }
`
	if _, err := ParseRegistry([]byte(yaml)); err == nil {
		t.Error("expected error for registry without package")
	}
}

func TestParseRegistry_NoGroups(t *testing.T) {
	if _, err := ParseRegistry([]byte("package: wire\n")); err == nil {
		t.Error("expected error for registry without groups")
	}
}

func TestParseRegistry_BadYAML(t *testing.T) {
	if _, err := ParseRegistry([]byte("package: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateRegistry_DuplicateConstName(t *testing.T) {
	reg := &RawRegistry{
		Package: "wire",
		Groups: []RawCodeGroup{{
			Prefix: "Format", Type: "FormatCode", Kind: "object format code", Short: "format",
			Codes: []RawCodeDef{
				{Name: "TIFF/EP", Code: 0x3802},
				{Name: "TIFFEP", Code: 0x3803},
			},
		}},
	}
	if err := ValidateRegistry(reg); err == nil {
		t.Error("expected error for colliding constant names")
	}
}

func TestValidateRegistry_DuplicateCode(t *testing.T) {
	reg := &RawRegistry{
		Package: "wire",
		Groups: []RawCodeGroup{{
			Prefix: "Op", Type: "OpCode", Kind: "operation code", Short: "operation",
			Codes: []RawCodeDef{
				{Name: "GetObject", Code: 0x1009},
				{Name: "GetThumb", Code: 0x1009},
			},
		}},
	}
	if err := ValidateRegistry(reg); err == nil {
		t.Error("expected error for duplicate code value")
	}
}

func TestValidateRegistry_MissingMetadata(t *testing.T) {
	reg := &RawRegistry{
		Package: "wire",
		Groups: []RawCodeGroup{{
			Prefix: "Op", Type: "OpCode",
			Codes: []RawCodeDef{{Name: "Undefined", Code: 0x1000}},
		}},
	}
	if err := ValidateRegistry(reg); err == nil {
		t.Error("expected error for group without kind/short")
	}
}

// --- Integration test against the real registry file ---

func TestLoadRegistryFile(t *testing.T) {
	reg, err := LoadRegistry(registryPath(t))
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}

	if reg.Package != "wire" {
		t.Errorf("package = %q, want wire", reg.Package)
	}
	if len(reg.Groups) != 5 {
		t.Fatalf("len(groups) = %d, want 5", len(reg.Groups))
	}

	wantCounts := map[string]int{
		"OpCode":     29,
		"RespCode":   33,
		"EventCode":  15,
		"PropCode":   32,
		"FormatCode": 28,
	}
	for _, g := range reg.Groups {
		want, ok := wantCounts[g.Type]
		if !ok {
			t.Errorf("unexpected group type %q", g.Type)
			continue
		}
		if len(g.Codes) != want {
			t.Errorf("group %s: len(codes) = %d, want %d", g.Type, len(g.Codes), want)
		}
	}

	ops := reg.Groups[0]
	if ops.Codes[0].Name != "Undefined" || ops.Codes[0].Code != 0x1000 {
		t.Errorf("first op = %+v, want Undefined/0x1000", ops.Codes[0])
	}
	last := ops.Codes[len(ops.Codes)-1]
	if last.Name != "InitiateOpenCapture" || last.Code != 0x101C {
		t.Errorf("last op = %+v, want InitiateOpenCapture/0x101C", last)
	}

	if err := ValidateRegistry(reg); err != nil {
		t.Errorf("ValidateRegistry failed on the shipped registry: %v", err)
	}
}
