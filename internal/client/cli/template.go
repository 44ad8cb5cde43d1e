package cli

import (
	"fmt"
	"strings"
	"text/template"

	apimodels "github.com/GLee998/church-database-bot/pkg/api"
)

const recordTemplate = `
=== {{.Name}} ===

ID:       {{.ID}}
Revision: {{.Revision}}
{{- range .Lines}}
{{printf "%-9s" (printf "%s:" .Label)}} {{.Value}}
{{- end}}
{{- if .Age}}
Age:      {{deref .Age}}
{{- end}}
`

const writeTemplate = `
{{if .Created}}Added{{else}}Saved{{end}}: {{.Name}}
ID:       {{.ID}}
Revision: {{.Revision}}
`

var templates = template.Must(template.New("record").Funcs(template.FuncMap{
	"deref": func(p *int) int { return *p },
}).Parse(recordTemplate))

var writeTmpl = template.Must(template.New("write").Parse(writeTemplate))

type line struct {
	Label string
	Value string
}

// recordView карточка человека для вывода
type recordView struct {
	Age      *int
	Name     string
	ID       string
	Lines    []line
	Revision int64
}

// newRecordView упорядочивает поля по схеме; без схемы выводит их как есть
func newRecordView(rec apimodels.Record, schema *apimodels.SchemaResponse) recordView {
	v := recordView{Name: displayName(rec), ID: rec.ID, Revision: rec.Revision, Age: rec.Age}

	if schema == nil {
		for k, val := range rec.Fields {
			v.Lines = append(v.Lines, line{Label: k, Value: val})
		}
		return v
	}
	for _, f := range schema.Fields {
		if val := rec.Fields[f.Key]; val != "" {
			v.Lines = append(v.Lines, line{Label: f.Header, Value: val})
		}
	}
	return v
}

func displayName(rec apimodels.Record) string {
	name := strings.TrimSpace(rec.Fields["first_name"] + " " + rec.Fields["last_name"])
	if name == "" {
		return fmt.Sprintf("row %d", rec.Row)
	}
	return name
}

func entryLine(e apimodels.Entry) string {
	var b strings.Builder
	b.WriteString(e.Label)
	if e.BirthDate != "" {
		fmt.Fprintf(&b, " (%s)", e.BirthDate)
	}
	if e.Age != nil {
		fmt.Fprintf(&b, ", %d", *e.Age)
	}
	if e.Status != "" {
		fmt.Fprintf(&b, " [%s]", e.Status)
	}
	return b.String()
}
