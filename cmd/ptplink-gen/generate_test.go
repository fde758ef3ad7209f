package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/imports"
)

func opGroup() RawCodeGroup {
	return RawCodeGroup{
		Prefix: "Op",
		Type:   "OpCode",
		Kind:   "operation code",
		Short:  "operation",
		Codes: []RawCodeDef{
			{Name: "Undefined", Code: 0x1000, Desc: "undefined operation"},
			{Name: "GetDeviceInfo", Code: 0x1001, Desc: "read device capabilities and identity"},
			{Name: "OpenSession", Code: 0x1002, Desc: "open a session with a chosen session id"},
			{Name: "GetThumb", Code: 0x100A},
		},
	}
}

func testRegistry() *RawRegistry {
	return &RawRegistry{
		Package: "wire",
		Groups:  []RawCodeGroup{opGroup()},
	}
}

func TestGenerateHeader(t *testing.T) {
	output, err := GenerateCodes(testRegistry())
	if err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}

	if !strings.HasPrefix(output, "// Code generated by ptplink-gen. DO NOT EDIT.\n") {
		t.Errorf("output does not start with the generated-code marker:\n%s", truncate(output, 200))
	}
	mustContain(t, output, "package wire")
	mustContain(t, output, `import "fmt"`)
}

func TestGenerateConstants(t *testing.T) {
	output, err := GenerateCodes(testRegistry())
	if err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}

	mustContain(t, output, "// OpCode is a PTP operation code.")
	mustContain(t, output, "type OpCode uint16")
	mustContain(t, output, "// Standard operation codes (PIMA 15740).")
	mustContain(t, output, "// OpUndefined: undefined operation.")
	mustContain(t, output, "OpUndefined OpCode = 0x1000")
	mustContain(t, output, "// OpGetDeviceInfo: read device capabilities and identity.")
	mustContain(t, output, "OpGetDeviceInfo OpCode = 0x1001")
	mustContain(t, output, "OpGetThumb OpCode = 0x100A")

	// No desc, no comment line.
	mustNotContain(t, output, "// OpGetThumb:")
}

func TestGenerateNameMap(t *testing.T) {
	output, err := GenerateCodes(testRegistry())
	if err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}

	mustContain(t, output, "// opNames maps operation codes to their standard names.")
	mustContain(t, output, "var opNames = map[OpCode]string{")
	mustContain(t, output, `OpUndefined: "Undefined",`)
	mustContain(t, output, `OpOpenSession: "OpenSession",`)
}

func TestGenerateStringMethod(t *testing.T) {
	output, err := GenerateCodes(testRegistry())
	if err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}

	mustContain(t, output, "// String returns the standard operation name, or the code in hex if unknown.")
	mustContain(t, output, "func (c OpCode) String() string {")
	mustContain(t, output, "if name, ok := opNames[c]; ok {")
	mustContain(t, output, `return fmt.Sprintf("0x%04X", uint16(c))`)
}

func TestGenerateConstSuffix(t *testing.T) {
	reg := &RawRegistry{
		Package: "wire",
		Groups: []RawCodeGroup{{
			Prefix: "Format", Type: "FormatCode", Kind: "object format code", Short: "format",
			Codes: []RawCodeDef{
				{Name: "EXIF/JPEG", Code: 0x3801, Desc: "EXIF/JPEG image"},
				{Name: "TIFF/IT", Code: 0x380E, Desc: "TIFF/IT image"},
			},
		}},
	}
	output, err := GenerateCodes(reg)
	if err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}

	// Constant names drop the slash, map values keep the display name.
	mustContain(t, output, "FormatEXIFJPEG FormatCode = 0x3801")
	mustContain(t, output, `FormatEXIFJPEG: "EXIF/JPEG",`)
	mustContain(t, output, "FormatTIFFIT FormatCode = 0x380E")
	mustContain(t, output, `FormatTIFFIT: "TIFF/IT",`)
	mustNotContain(t, output, "FormatEXIF/JPEG ")
}

func TestGenerateMultipleGroups(t *testing.T) {
	reg := &RawRegistry{
		Package: "wire",
		Groups: []RawCodeGroup{
			opGroup(),
			{
				Prefix: "Resp", Type: "RespCode", Kind: "response code", Short: "response",
				Codes: []RawCodeDef{
					{Name: "OK", Code: 0x2001, Desc: "operation completed successfully"},
				},
			},
		},
	}
	output, err := GenerateCodes(reg)
	if err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}

	mustContain(t, output, "type OpCode uint16")
	mustContain(t, output, "type RespCode uint16")
	mustContain(t, output, "var respNames = map[RespCode]string{")
	mustContain(t, output, "func (c RespCode) String() string {")
	mustContain(t, output, "// String returns the standard response name, or the code in hex if unknown.")
}

func TestGenerateInvalidRegistry(t *testing.T) {
	reg := &RawRegistry{
		Package: "wire",
		Groups: []RawCodeGroup{{
			Prefix: "Op", Type: "OpCode", Kind: "operation code", Short: "operation",
			Codes: []RawCodeDef{
				{Name: "GetObject", Code: 0x1009},
				{Name: "GetObject", Code: 0x100A},
			},
		}},
	}
	if _, err := GenerateCodes(reg); err == nil {
		t.Error("expected error for registry with duplicate names")
	}
}

func TestGenerateOutputFormats(t *testing.T) {
	output, err := GenerateCodes(testRegistry())
	if err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}

	if _, err := imports.Process("codes_gen.go", []byte(output), nil); err != nil {
		t.Fatalf("generated output does not format: %v\nOutput:\n%s", err, truncate(output, 3000))
	}
}

// TestGenerateMatchesCommitted regenerates pkg/wire/codes_gen.go from the
// shipped registry and requires byte equality with the committed file.
func TestGenerateMatchesCommitted(t *testing.T) {
	reg, err := LoadRegistry(registryPath(t))
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}

	code, err := GenerateCodes(reg)
	if err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}
	formatted, err := imports.Process("codes_gen.go", []byte(code), nil)
	if err != nil {
		t.Fatalf("formatting generated output failed: %v", err)
	}

	committedPath := filepath.Join(filepath.Dir(registryPath(t)), "..", "..", "pkg", "wire", "codes_gen.go")
	want, err := os.ReadFile(committedPath)
	if err != nil {
		t.Fatalf("reading committed file: %v", err)
	}

	if !bytes.Equal(formatted, want) {
		gotLines := strings.Split(string(formatted), "\n")
		wantLines := strings.Split(string(want), "\n")
		for i := range gotLines {
			if i >= len(wantLines) || gotLines[i] != wantLines[i] {
				wantLine := "<EOF>"
				if i < len(wantLines) {
					wantLine = wantLines[i]
				}
				t.Fatalf("generated output diverges from committed codes_gen.go at line %d:\n  generated: %s\n  committed: %s",
					i+1, gotLines[i], wantLine)
			}
		}
		t.Fatalf("generated output is a truncated prefix of the committed file (%d vs %d lines)",
			len(gotLines), len(wantLines))
	}
}

// Helpers

func mustContain(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Errorf("output does not contain %q\nOutput (first 3000 chars):\n%s", substr, truncate(output, 3000))
	}
}

func mustNotContain(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Errorf("output should not contain %q", substr)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
