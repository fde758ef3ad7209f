//go:build tools

package tools

// No tool binaries are tracked with blank imports. Code table generation
// runs through the in-module generator (go run ./cmd/ptplink-gen) and
// formatting of its output uses golang.org/x/tools/imports as a regular
// library import.
