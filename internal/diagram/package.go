package diagram

import (
	"fmt"
	"io"
	"strings"

	"github.com/phobologic/classdoc/internal/graph"
	"github.com/phobologic/classdoc/internal/model"
	"github.com/phobologic/classdoc/internal/ranking"
	"github.com/phobologic/classdoc/internal/render"
)

// Packages renders one class diagram per package. Each diagram holds the
// package's types and the extends, implements and uses edges whose ends
// both belong to the package.
type Packages struct {
	Title string
}

// Name implements render.Renderer.
func (p *Packages) Name() string { return "diagrams" }

// Render implements render.Renderer.
func (p *Packages) Render(w io.Writer, reg *model.Registry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Class Diagrams - %s\n", titleOr(p.Title))
	b.WriteString(generatedNote)

	edges := graph.Resolve(reg)
	for _, group := range reg.Packages() {
		fmt.Fprintf(&b, "## Package: %s\n\n", render.PackageLabel(group.Name))
		b.WriteString("```mermaid\n")
		b.WriteString(PackageDiagram(group, edges))
		b.WriteString("```\n\n---\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// PackageDiagram returns the classDiagram for one package group, keeping
// only edges between its members.
func PackageDiagram(group model.PackageGroup, edges []model.Edge) string {
	members := model.NewRegistry()
	for _, m := range group.Members {
		members.Put(m)
	}

	var b strings.Builder
	b.WriteString("classDiagram\n\n")
	for _, m := range group.Members {
		writeClass(&b, m)
	}

	local := ranking.FilterEdges(members, edges)
	if len(local) > 0 {
		b.WriteString("\n")
	}
	lines := newLineSet(&b)
	for _, e := range local {
		if line, ok := edgeLine(members, e); ok {
			lines.add(line)
		}
	}
	return b.String()
}

// Combined renders a single whole-project diagram: every type grouped by
// package, the extends and implements edges, and the cross-layer uses and
// depends edges.
type Combined struct {
	Title  string
	Layers graph.Layers
}

// Name implements render.Renderer.
func (c *Combined) Name() string { return "combined" }

// Render implements render.Renderer.
func (c *Combined) Render(w io.Writer, reg *model.Registry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Combined Class Diagram - %s\n", titleOr(c.Title))
	b.WriteString(generatedNote)

	b.WriteString("```mermaid\n")
	b.WriteString("classDiagram\n\n")
	for _, group := range reg.Packages() {
		fmt.Fprintf(&b, "    %%%% Package: %s\n", render.PackageLabel(group.Name))
		for _, m := range group.Members {
			writeClass(&b, m)
		}
		b.WriteString("\n")
	}

	b.WriteString("    %% Relationships\n")
	lines := newLineSet(&b)
	for _, e := range graph.Resolve(reg) {
		if e.Kind != model.Extends && e.Kind != model.Implements {
			continue
		}
		if line, ok := edgeLine(reg, e); ok {
			lines.add(line)
		}
	}
	for _, e := range graph.CrossLayer(reg, c.Layers) {
		if line, ok := edgeLine(reg, e); ok {
			lines.add(line)
		}
	}
	b.WriteString("```\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func titleOr(title string) string {
	if title == "" {
		return render.DefaultTitle
	}
	return title
}
