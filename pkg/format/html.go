package format

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed templates/report.html.tmpl
var reportTemplateSource string

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateSource))

// WriteHTML renders a static match report: a regular HTML page, not the
// abandoned per-text phonological-tooltip annotator spec.md §1 lists as
// out of scope. html/template + a //go:embed asset mirrors the teacher's
// embedded-charset pattern (ipa.Charset), applied here to a report
// template instead of a phonetic dictionary.
func WriteHTML(w io.Writer, records []Record) error {
	return reportTemplate.Execute(w, records)
}
