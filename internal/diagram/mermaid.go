// Package diagram renders Mermaid class diagrams from the project registry.
//
// Node identifiers are simple type names, so two types sharing a name in
// different packages collapse into one node in a combined diagram.
package diagram

import (
	"fmt"
	"strings"

	"github.com/phobologic/classdoc/internal/model"
	"github.com/phobologic/classdoc/internal/render"
)

// Header text shared by every diagram file.
const generatedNote = "*(generated by classdoc)*\n\n---\n\n"

// SanitizeType rewrites a Java type for a Mermaid member line. Mermaid
// writes generic parameters between tildes.
func SanitizeType(t string) string {
	return strings.NewReplacer("<", "~", ">", "~").Replace(t)
}

// NodeID returns the diagram identifier of a type.
func NodeID(name string) string {
	return strings.NewReplacer(".", "_", "$", "_", "-", "_").Replace(name)
}

// writeClass writes a class block with its stereotype and at most
// render.DiagramAttributeLimit attributes as "-name : Type", followed by a
// "+N more" line when some were left out.
func writeClass(b *strings.Builder, m *model.SourceModel) {
	fmt.Fprintf(b, "    class %s {\n", NodeID(m.Name))
	switch m.Kind {
	case model.Interface:
		b.WriteString("        <<interface>>\n")
	case model.Enum:
		b.WriteString("        <<enumeration>>\n")
	}
	attrs := m.Attributes
	if len(attrs) > render.DiagramAttributeLimit {
		attrs = attrs[:render.DiagramAttributeLimit]
	}
	for _, a := range attrs {
		fmt.Fprintf(b, "        -%s : %s\n", a.Name, SanitizeType(a.Type))
	}
	if hidden := len(m.Attributes) - len(attrs); hidden > 0 {
		fmt.Fprintf(b, "        %s\n", render.MoreMarker(hidden))
	}
	b.WriteString("    }\n")
}

// arrows maps edge kinds to Mermaid relation syntax.
var arrows = map[model.EdgeKind]string{
	model.Extends:    "<|--",
	model.Implements: "<|..",
	model.Uses:       "-->",
	model.Depends:    "-->",
}

// edgeLine formats e using simple names; ok is false if either end is not
// registered.
func edgeLine(reg *model.Registry, e model.Edge) (string, bool) {
	from, ok := reg.Get(e.From)
	if !ok {
		return "", false
	}
	to, ok := reg.Get(e.To)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("    %s %s %s : %s\n", NodeID(from.Name), arrows[e.Kind], NodeID(to.Name), e.Label), true
}

// lineSet writes each distinct line once, in first-seen order.
type lineSet struct {
	b    *strings.Builder
	seen map[string]struct{}
}

func newLineSet(b *strings.Builder) *lineSet {
	return &lineSet{b: b, seen: make(map[string]struct{})}
}

func (s *lineSet) add(line string) {
	if _, dup := s.seen[line]; dup {
		return
	}
	s.seen[line] = struct{}{}
	s.b.WriteString(line)
}
