package render

import (
	"bytes"
	"html/template"
	"io"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/phobologic/classdoc/internal/model"
)

// DefaultConverter is the external program that turns HTML into DOCX.
const DefaultConverter = "pandoc"

// Document renders a DOCX file. Each type gets a CRC table (heading row,
// then the responsibility sentence and kind beside the full attribute list)
// followed by a shaded single-cell block listing attributes as
// "- name : Type". The layout is built as HTML and converted by an external
// converter, pandoc by default.
type Document struct {
	Options   Options
	Converter string // Converter binary; DefaultConverter when empty
}

// Name implements Renderer.
func (d *Document) Name() string { return "document" }

func (d *Document) converter() string {
	if d.Converter == "" {
		return DefaultConverter
	}
	return d.Converter
}

// Check implements Checker.
func (d *Document) Check() error {
	if _, err := exec.LookPath(d.converter()); err != nil {
		return errors.WithHint(
			errors.Wrapf(ErrUnavailable, "document converter %q not found", d.converter()),
			"install pandoc or set document.converter in .classdoc.yaml",
		)
	}
	return nil
}

// Render implements Renderer.
func (d *Document) Render(w io.Writer, reg *model.Registry) error {
	if err := d.Check(); err != nil {
		return err
	}

	var html bytes.Buffer
	if err := d.HTML(&html, reg); err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.Command(d.converter(), "-f", "html", "-t", "docx", "-o", "-")
	cmd.Stdin = &html
	cmd.Stdout = w
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s: %s", d.converter(), strings.TrimSpace(stderr.String()))
	}
	return nil
}

type docEntry struct {
	Name       string
	Summary    string
	Kind       model.Kind
	Attributes []string
	UML        []string
}

type docPackage struct {
	Name    string
	Entries []docEntry
}

type docPage struct {
	Title    string
	Packages []docPackage
}

// HTML writes the intermediate document that Render hands to the converter.
func (d *Document) HTML(w io.Writer, reg *model.Registry) error {
	page := docPage{Title: d.Options.title()}
	for _, group := range reg.Packages() {
		pkg := docPackage{Name: PackageLabel(group.Name)}
		for _, m := range group.Members {
			entry := docEntry{
				Name:    m.Name,
				Summary: d.Options.Heuristics.Responsibility(m),
				Kind:    m.Kind,
			}
			for _, a := range m.Attributes {
				entry.Attributes = append(entry.Attributes, a.String()+";")
				entry.UML = append(entry.UML, "- "+a.Name+" : "+a.Type)
			}
			pkg.Entries = append(pkg.Entries, entry)
		}
		page.Packages = append(page.Packages, pkg)
	}
	if err := documentTmpl.Execute(w, page); err != nil {
		return errors.Wrap(err, "rendering document")
	}
	return nil
}

var documentTmpl = template.Must(template.New("document").Parse(documentHTML))

const documentHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>CRC Design</title></head>
<body style="font-family: 'Times New Roman'; font-size: 12pt">
<h1 style="text-align: center">CRC DESIGN</h1>
<p style="text-align: center"><strong>{{.Title}}</strong></p>
<p style="text-align: center"><em>(generated by classdoc)</em></p>
{{- range .Packages}}
<h2 style="color: #0066cc">Package: {{.Name}}</h2>
{{- range .Entries}}
<table border="1">
<tr><th colspan="2" style="background: #FFD700; text-align: left">Class {{.Name}}</th></tr>
<tr>
<td><p>{{.Summary}}</p><p><em>({{.Kind}})</em></p></td>
<td>{{range .Attributes}}<code>{{.}}</code><br>{{else}}<em>(no private attributes)</em>{{end}}</td>
</tr>
</table>
<table border="1">
<tr><td style="background: #FFFF99"><p><strong>{{.Name}}</strong></p>
{{- range .UML}}
<p><code>{{.}}</code></p>
{{- else}}
<p><em>(no attributes)</em></p>
{{- end}}
</td></tr>
</table>
<p></p>
{{- end}}
{{- end}}
</body>
</html>
`
