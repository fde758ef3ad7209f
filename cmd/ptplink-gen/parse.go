package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawRegistry represents a code registry loaded from YAML.
type RawRegistry struct {
	Package string         `yaml:"package"`
	Groups  []RawCodeGroup `yaml:"groups"`
}

// RawCodeGroup represents one generated code type and its values.
type RawCodeGroup struct {
	Prefix string       `yaml:"prefix"` // constant name prefix, e.g. "Op"
	Type   string       `yaml:"type"`   // generated Go type, e.g. "OpCode"
	Kind   string       `yaml:"kind"`   // doc noun, e.g. "operation code"
	Short  string       `yaml:"short"`  // String() doc noun, e.g. "operation"
	Codes  []RawCodeDef `yaml:"codes"`
}

// RawCodeDef represents a single named code.
type RawCodeDef struct {
	Name string `yaml:"name"`
	Code uint16 `yaml:"code"`
	Desc string `yaml:"desc"`
}

// ParseRegistry parses a code registry from YAML bytes.
func ParseRegistry(data []byte) (*RawRegistry, error) {
	var reg RawRegistry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	if reg.Package == "" {
		return nil, fmt.Errorf("registry missing package")
	}
	if len(reg.Groups) == 0 {
		return nil, fmt.Errorf("registry defines no code groups")
	}
	return &reg, nil
}

// LoadRegistry loads and parses a code registry from a file.
func LoadRegistry(path string) (*RawRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseRegistry(data)
}

// ValidateRegistry checks group metadata and rejects duplicate constant
// names or duplicate code values within a group.
func ValidateRegistry(reg *RawRegistry) error {
	for _, g := range reg.Groups {
		if g.Prefix == "" || g.Type == "" || g.Kind == "" || g.Short == "" {
			return fmt.Errorf("group %q: prefix, type, kind and short are all required", g.Type)
		}
		if len(g.Codes) == 0 {
			return fmt.Errorf("group %s defines no codes", g.Type)
		}
		names := make(map[string]uint16, len(g.Codes))
		values := make(map[uint16]string, len(g.Codes))
		for _, c := range g.Codes {
			if c.Name == "" {
				return fmt.Errorf("group %s: code 0x%04X has no name", g.Type, c.Code)
			}
			constName := g.Prefix + goConstSuffix(c.Name)
			if prev, ok := names[constName]; ok {
				return fmt.Errorf("group %s: %s defined for both 0x%04X and 0x%04X", g.Type, constName, prev, c.Code)
			}
			names[constName] = c.Code
			if prev, ok := values[c.Code]; ok {
				return fmt.Errorf("group %s: 0x%04X named both %q and %q", g.Type, c.Code, prev, c.Name)
			}
			values[c.Code] = c.Name
		}
	}
	return nil
}
