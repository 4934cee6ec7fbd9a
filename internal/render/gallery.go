package render

import (
	"html/template"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/phobologic/classdoc/internal/model"
)

// Gallery renders a standalone HTML page with one card per type, laid out
// in a grid under a heading per package.
type Gallery struct {
	Options Options
}

// Name implements Renderer.
func (g *Gallery) Name() string { return "gallery" }

type galleryList struct {
	Items []string
	More  int
	Empty string
}

type galleryCard struct {
	Name             string
	Kind             model.Kind
	Responsibilities galleryList
	Collaborators    galleryList
	Attributes       galleryList
}

type galleryPackage struct {
	Name  string
	Cards []galleryCard
}

type galleryPage struct {
	Title    string
	Packages []galleryPackage
}

// Render implements Renderer.
func (g *Gallery) Render(w io.Writer, reg *model.Registry) error {
	page := galleryPage{Title: g.Options.title()}
	for _, group := range reg.Packages() {
		pkg := galleryPackage{Name: PackageLabel(group.Name)}
		for _, m := range group.Members {
			pkg.Cards = append(pkg.Cards, g.card(m))
		}
		page.Packages = append(page.Packages, pkg)
	}
	if err := galleryTmpl.Execute(w, page); err != nil {
		return errors.Wrap(err, "rendering gallery")
	}
	return nil
}

func (g *Gallery) card(m *model.SourceModel) galleryCard {
	list := func(items []string, limit int, empty string) galleryList {
		shown, more := truncate(items, limit)
		return galleryList{Items: shown, More: more, Empty: empty}
	}
	return galleryCard{
		Name:             m.Name,
		Kind:             m.Kind,
		Responsibilities: list(g.Options.Heuristics.responsibilities(m), GalleryLimit, ""),
		Collaborators:    list(m.SortedCollaborators(), GalleryCollabLimit, "(none identified)"),
		Attributes:       list(attributeStrings(m.Attributes), GalleryLimit, "(none)"),
	}
}

var galleryTmpl = template.Must(template.New("gallery").Funcs(template.FuncMap{
	"more": MoreMarker,
}).Parse(galleryHTML))

const galleryHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>CRC Cards - {{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
        .crc-container { display: grid; grid-template-columns: repeat(auto-fill, minmax(400px, 1fr)); gap: 20px; margin-top: 20px; }
        .crc-card { background: white; border: 2px solid #333; border-radius: 8px; padding: 15px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .crc-card h3 { margin-top: 0; color: #0066cc; border-bottom: 2px solid #0066cc; padding-bottom: 5px; }
        .crc-section { margin: 10px 0; }
        .crc-section h4 { color: #666; font-size: 14px; margin-bottom: 5px; }
        .crc-section ul { margin: 5px 0; padding-left: 20px; }
        .crc-section li { margin: 3px 0; font-size: 12px; }
        .package-header { background: #0066cc; color: white; padding: 10px; margin: 20px 0 10px 0; border-radius: 5px; }
    </style>
</head>
<body>
    <h1>CRC Design - {{.Title}}</h1>
    <p><em>Generated by classdoc</em></p>
{{- range .Packages}}
    <div class="package-header"><h2>Package: {{.Name}}</h2></div>
    <div class="crc-container">
{{- range .Cards}}
        <div class="crc-card">
            <h3>{{.Name}} ({{.Kind}})</h3>
            <div class="crc-section">
                <h4>Responsibilities:</h4>
                {{template "list" .Responsibilities}}
            </div>
            <div class="crc-section">
                <h4>Collaborators:</h4>
                {{template "list" .Collaborators}}
            </div>
            <div class="crc-section">
                <h4>Attributes:</h4>
                {{template "list" .Attributes}}
            </div>
        </div>
{{- end}}
    </div>
{{- end}}
</body>
</html>
{{define "list"}}<ul>
{{- range .Items}}
                    <li>{{.}}</li>
{{- else}}
                    <li>{{.Empty}}</li>
{{- end}}
{{- if .More}}
                    <li><em>{{more .More}}</em></li>
{{- end}}
                </ul>{{end}}`
