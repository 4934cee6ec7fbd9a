package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/phobologic/classdoc/internal/model"
)

// Cards renders Markdown CRC cards, one per type, grouped by package and
// followed by a relationships section.
type Cards struct {
	Options Options
}

// Name implements Renderer.
func (c *Cards) Name() string { return "cards" }

// Render implements Renderer.
func (c *Cards) Render(w io.Writer, reg *model.Registry) error {
	var b strings.Builder

	b.WriteString("# CRC Design\n")
	fmt.Fprintf(&b, "## %s\n", c.Options.title())
	b.WriteString("*(generated by classdoc)*\n\n")
	b.WriteString("---\n\n")

	for _, group := range reg.Packages() {
		fmt.Fprintf(&b, "## Package: %s\n\n", PackageLabel(group.Name))
		for _, m := range group.Members {
			c.writeCard(&b, m)
			b.WriteString("\n---\n\n")
		}
	}

	b.WriteString("## Relationships\n\n")
	writeRelationships(&b, reg)

	_, err := io.WriteString(w, b.String())
	return err
}

func (c *Cards) writeCard(b *strings.Builder, m *model.SourceModel) {
	fmt.Fprintf(b, "### Class: %s\n", m.Name)
	fmt.Fprintf(b, "**Kind:** %s\n", m.Kind)
	fmt.Fprintf(b, "**Package:** %s\n", PackageLabel(m.Package))
	fmt.Fprintf(b, "**File:** %s\n\n", m.SourcePath)

	b.WriteString("**Responsibilities:**\n")
	writeList(b, c.Options.Heuristics.responsibilities(m))
	b.WriteString("\n")

	b.WriteString("**Collaborators:**\n")
	if collabs := m.SortedCollaborators(); len(collabs) > 0 {
		writeList(b, collabs)
	} else {
		b.WriteString("- (none identified)\n")
	}
	b.WriteString("\n")

	b.WriteString("**Attributes:**\n")
	if len(m.Attributes) > 0 {
		writeTruncated(b, attributeStrings(m.Attributes), CardMemberLimit)
	} else {
		b.WriteString("- (no private attributes)\n")
	}
	b.WriteString("\n")

	if len(m.Methods) > 0 {
		b.WriteString("**Methods:**\n")
		writeTruncated(b, methodStrings(m.Methods), CardMemberLimit)
		b.WriteString("\n")
	}
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeTruncated(b *strings.Builder, items []string, limit int) {
	shown, more := truncate(items, limit)
	writeList(b, shown)
	if more > 0 {
		fmt.Fprintf(b, "- %s\n", MoreMarker(more))
	}
}

func writeRelationships(b *strings.Builder, reg *model.Registry) {
	if pairs := ImplementationPairs(reg); len(pairs) > 0 {
		b.WriteString("### Implementation\n")
		for _, p := range pairs {
			fmt.Fprintf(b, "- `%s` implements `%s`\n", p.Impl, p.Interface)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Dependencies\n")
	for _, m := range reg.Models() {
		for _, c := range m.SortedCollaborators() {
			fmt.Fprintf(b, "- `%s` → `%s`\n", m.Name, c)
		}
	}
	b.WriteString("\n")
}

// Pair links a service interface to its implementation.
type Pair struct {
	Interface string
	Impl      string
}

// ImplementationPairs pairs each interface whose name contains "Service" with
// the registered type named after it with "Service" replaced by
// "ServiceImpl", in registry order.
func ImplementationPairs(reg *model.Registry) []Pair {
	var pairs []Pair
	for _, m := range reg.Models() {
		if m.Kind != model.Interface || !strings.Contains(m.Name, "Service") {
			continue
		}
		impl := strings.ReplaceAll(m.Name, "Service", "ServiceImpl")
		if reg.HasName(impl) {
			pairs = append(pairs, Pair{Interface: m.Name, Impl: impl})
		}
	}
	return pairs
}
