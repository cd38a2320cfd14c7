package gen

import "text/template"

// templateData holds all data needed for the described template.
type templateData struct {
	PackageName string
	StdImports  []importSpec
	Imports     []importSpec
	Types       []typeData
	Methods     []methodData
}

type importSpec struct {
	Alias string
	Path  string
}

// typeData is one registration call. Docs, Directives and Meta hold Go
// expressions and are omitted when empty.
type typeData struct {
	Name       string
	Register   string
	Enum       bool
	Docs       string
	Fields     []fieldData
	Directives string
	Meta       string
	Variants   []variantData
}

type fieldData struct {
	Name string
	Docs string
}

type variantData struct {
	Ident      string
	Docs       string
	Directives string
	Meta       string
}

type methodData struct {
	TypeName string
	MetaType string
}

var describedTemplate = template.Must(template.New("described").Parse(`// Code generated by describe-gen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .StdImports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

func init() {
{{- range .Types}}
	describe.{{.Register}}(reflect.TypeFor[{{.Name}}](), describe.{{if .Enum}}EnumDecl{{else}}TypeDecl{{end}}{
{{- if .Docs}}
		Docs: {{.Docs}},
{{- end}}
{{- if .Fields}}
		Fields: map[string][]string{
{{- range .Fields}}
			{{.Name}}: {{.Docs}},
{{- end}}
		},
{{- end}}
{{- if .Directives}}
		Directives: {{.Directives}},
{{- end}}
{{- if .Meta}}
		Meta: {{.Meta}},
{{- end}}
{{- if .Enum}}
		Variants: []describe.VariantDecl{
{{- range .Variants}}
			{Ident: "{{.Ident}}", Value: {{.Ident}}{{if .Docs}}, Docs: {{.Docs}}{{end}}{{if .Directives}}, Directives: {{.Directives}}{{end}}{{if .Meta}}, Meta: {{.Meta}}{{end}}},
{{- end}}
		},
{{- end}}
	})
{{- end}}
}
{{range .Methods}}
// DescribeMetadata returns the descriptor of {{.TypeName}}.
func ({{.TypeName}}) DescribeMetadata() (meta.Descriptor[{{.MetaType}}], error) {
	return describe.Reflect[{{.MetaType}}](reflect.TypeFor[{{.TypeName}}]())
}
{{end}}`))
