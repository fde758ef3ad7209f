package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	registryPath := flag.String("registry", "", "Path to the code registry YAML (docs/codes/ptp.yaml)")
	outputDir := flag.String("output", "", "Output directory for the generated Go file")
	flag.Parse()

	if *registryPath == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: ptplink-gen -registry <path> -output <dir>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*registryPath, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(registryPath, outputDir string) error {
	reg, err := LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	code, err := GenerateCodes(reg)
	if err != nil {
		return fmt.Errorf("generating code tables: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	outPath := filepath.Join(outputDir, "codes_gen.go")
	if err := writeFormatted(outPath, code); err != nil {
		return fmt.Errorf("writing codes_gen.go: %w", err)
	}
	fmt.Printf("  generated %s\n", outPath)

	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
