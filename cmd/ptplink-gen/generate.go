package main

import (
	"fmt"
	"strings"
)

// codeGroupData holds pre-computed data for the code group template.
type codeGroupData struct {
	TypeName string
	Kind     string
	Plural   string
	Short    string
	MapVar   string
	Codes    []codeEntryData
}

type codeEntryData struct {
	ConstName string
	Name      string
	Hex       string
	Desc      string
}

// GenerateCodes renders the complete code-table file for a registry:
// one typed constant block, name map and String method per group.
func GenerateCodes(reg *RawRegistry) (string, error) {
	if err := ValidateRegistry(reg); err != nil {
		return "", err
	}

	var b strings.Builder
	renderTemplate(&b, "header", reg)
	for _, g := range reg.Groups {
		renderTemplate(&b, "codeGroup", buildGroupData(g))
	}
	return b.String(), nil
}

// buildGroupData derives template data from a raw group definition.
func buildGroupData(g RawCodeGroup) codeGroupData {
	data := codeGroupData{
		TypeName: g.Type,
		Kind:     g.Kind,
		Plural:   g.Kind + "s",
		Short:    g.Short,
		MapVar:   firstLower(g.Prefix) + "Names",
	}
	for _, c := range g.Codes {
		data.Codes = append(data.Codes, codeEntryData{
			ConstName: g.Prefix + goConstSuffix(c.Name),
			Name:      c.Name,
			Hex:       fmt.Sprintf("0x%04X", c.Code),
			Desc:      c.Desc,
		})
	}
	return data
}
