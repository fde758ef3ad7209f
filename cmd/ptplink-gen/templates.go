package main

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(
	headerTmpl + codeGroupTmpl,
))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

// firstLower lowercases the first rune of s.
func firstLower(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// goConstSuffix strips characters that cannot appear in a Go identifier,
// so a display name like "EXIF/JPEG" yields the EXIFJPEG constant suffix.
func goConstSuffix(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// --- Template definitions ---

const headerTmpl = `{{define "header"}}// Code generated by ptplink-gen. DO NOT EDIT.

package {{.Package}}

import "fmt"

{{end}}`

const codeGroupTmpl = `{{define "codeGroup"}}// {{.TypeName}} is a PTP {{.Kind}}.
type {{.TypeName}} uint16

// Standard {{.Plural}} (PIMA 15740).
const (
{{- range .Codes}}
{{- if .Desc}}
// {{.ConstName}}: {{.Desc}}.
{{- end}}
{{.ConstName}} {{$.TypeName}} = {{.Hex}}
{{- end}}
)

// {{.MapVar}} maps {{.Plural}} to their standard names.
var {{.MapVar}} = map[{{.TypeName}}]string{
{{- range .Codes}}
{{.ConstName}}: {{quote .Name}},
{{- end}}
}

// String returns the standard {{.Short}} name, or the code in hex if unknown.
func (c {{.TypeName}}) String() string {
if name, ok := {{.MapVar}}[c]; ok {
return name
}
return fmt.Sprintf("0x%04X", uint16(c))
}

{{end}}`
