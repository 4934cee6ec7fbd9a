package diagram

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/phobologic/classdoc/internal/graph"
	"github.com/phobologic/classdoc/internal/model"
	"github.com/phobologic/classdoc/internal/ranking"
)

// Relation is a hand-written relationship statement between two named
// types, drawn only when both types are registered.
type Relation struct {
	From        string `mapstructure:"from" yaml:"from"`
	To          string `mapstructure:"to" yaml:"to"`
	Cardinality string `mapstructure:"cardinality" yaml:"cardinality"`
	Label       string `mapstructure:"label" yaml:"label"`
}

func (r Relation) String() string {
	return fmt.Sprintf("%s %s %s : %q", NodeID(r.From), r.Cardinality, NodeID(r.To), r.Label)
}

// DefaultFocusTitle names the built-in focus subset.
const DefaultFocusTitle = "Household Module"

// DefaultFocusTypes is the built-in household subdomain.
var DefaultFocusTypes = []string{
	"HoGiaDinh", "Phong", "NhanKhau", "PhieuThu",
	"ChiTietThu", "PhuongTien", "LichSuNhanKhau",
	"HoGiaDinhService", "HoGiaDinhServiceImpl",
	"NhanKhauService", "NhanKhauServiceImpl",
	"PhieuThuService", "PhieuThuServiceImpl",
}

// DefaultFocusRelations are the cardinalities of the household subdomain.
var DefaultFocusRelations = []Relation{
	{From: "Phong", To: "HoGiaDinh", Cardinality: "||--o{", Label: "soPhong"},
	{From: "NhanKhau", To: "HoGiaDinh", Cardinality: "||--o|", Label: "maChuHo (soCCCD)"},
	{From: "HoGiaDinh", To: "NhanKhau", Cardinality: "||--o{", Label: "maHo"},
	{From: "HoGiaDinh", To: "PhieuThu", Cardinality: "||--o{", Label: "maHo"},
	{From: "PhieuThu", To: "ChiTietThu", Cardinality: "||--o{", Label: "maPhieu"},
	{From: "HoGiaDinh", To: "PhuongTien", Cardinality: "||--o{", Label: "maHo"},
	{From: "NhanKhau", To: "LichSuNhanKhau", Cardinality: "||--o{", Label: "maNhanKhau"},
}

// Focus renders a curated diagram of a named subset of types.
//
// Types are drawn in layer sections (models, service interfaces, service
// implementations, then anything else), followed by implements edges from
// the implementations, the fixed Relations, and field-based edges from the
// services: uses for a field typed as a focus model, depends for a field
// typed as another service.
//
// When Types is empty the AutoLimit highest-ranked types are used instead.
type Focus struct {
	Title     string
	Types     []string
	Relations []Relation
	Layers    graph.Layers
	AutoLimit int
}

// Name implements render.Renderer.
func (f *Focus) Name() string { return "focus" }

type focusSections struct {
	models, interfaces, impls, other []*model.SourceModel
}

func (f *Focus) selectTypes(reg *model.Registry) []string {
	if len(f.Types) > 0 {
		return f.Types
	}
	edges := append(graph.Resolve(reg), graph.CrossLayer(reg, f.Layers)...)
	return ranking.TopNames(reg, graph.Rank(reg, edges), f.AutoLimit)
}

func (f *Focus) sections(subset *model.Registry) focusSections {
	var s focusSections
	for _, m := range subset.Models() {
		switch {
		case f.Layers.Model != "" && strings.Contains(m.Package, f.Layers.Model):
			s.models = append(s.models, m)
		case f.Layers.Service != "" && m.Kind == model.Interface && strings.Contains(m.Package, f.Layers.Service):
			s.interfaces = append(s.interfaces, m)
		case f.Layers.Impl != "" && strings.Contains(m.Package, f.Layers.Impl):
			s.impls = append(s.impls, m)
		default:
			s.other = append(s.other, m)
		}
	}
	for _, list := range [][]*model.SourceModel{s.models, s.interfaces, s.impls, s.other} {
		sortByName(list)
	}
	return s
}

// Render implements render.Renderer.
func (f *Focus) Render(w io.Writer, reg *model.Registry) error {
	subset := ranking.SelectNames(reg, f.selectTypes(reg))
	s := f.sections(subset)

	title := f.Title
	if title == "" {
		title = DefaultFocusTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Class Diagram - %s\n", title)
	b.WriteString(generatedNote)
	b.WriteString("## Description\n\n")
	b.WriteString("This diagram shows the classes of the " + title + " and their relationships:\n")
	fmt.Fprintf(&b, "- **Models**: %s\n", joinNames(s.models))
	fmt.Fprintf(&b, "- **Services**: %s\n", joinNames(append(append([]*model.SourceModel{}, s.interfaces...), s.impls...)))
	if len(s.other) > 0 {
		fmt.Fprintf(&b, "- **Other**: %s\n", joinNames(s.other))
	}
	b.WriteString("\n---\n\n")

	b.WriteString("```mermaid\n")
	b.WriteString("classDiagram\n\n")
	writeSection(&b, "Models", s.models)
	writeSection(&b, "Service Interfaces", s.interfaces)
	writeSection(&b, "Service Implementations", s.impls)
	if len(s.other) > 0 {
		writeSection(&b, "Other Types", s.other)
	}

	b.WriteString("    %% Relationships\n")
	lines := newLineSet(&b)

	for _, m := range s.impls {
		for _, iface := range m.Implements {
			if key, ok := reg.Resolve(iface, m.Package); ok {
				target, _ := reg.Get(key)
				lines.add(fmt.Sprintf("    %s <|.. %s : implements\n", NodeID(target.Name), NodeID(m.Name)))
			}
		}
	}

	for _, r := range f.Relations {
		if reg.HasName(r.From) && reg.HasName(r.To) {
			lines.add("    " + r.String() + "\n")
		}
	}

	focusModels := make(map[string]struct{}, len(s.models))
	for _, m := range s.models {
		focusModels[m.Name] = struct{}{}
	}
	services := append(append([]*model.SourceModel{}, s.impls...), s.interfaces...)
	for _, m := range services {
		for _, a := range m.Attributes {
			if _, ok := focusModels[a.Type]; ok {
				lines.add(fmt.Sprintf("    %s --> %s : uses\n", NodeID(m.Name), NodeID(a.Type)))
			}
		}
	}
	for _, m := range s.impls {
		for _, a := range m.Attributes {
			if a.Type == m.Name || !strings.Contains(a.Type, "Service") || !reg.HasName(a.Type) {
				continue
			}
			lines.add(fmt.Sprintf("    %s --> %s : depends\n", NodeID(m.Name), NodeID(a.Type)))
		}
	}
	b.WriteString("```\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, heading string, members []*model.SourceModel) {
	fmt.Fprintf(b, "    %%%% %s\n", heading)
	for _, m := range members {
		writeClass(b, m)
	}
	b.WriteString("\n")
}

func sortByName(list []*model.SourceModel) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
}

func joinNames(list []*model.SourceModel) string {
	if len(list) == 0 {
		return "(none)"
	}
	names := make([]string, len(list))
	for i, m := range list {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}
