// Package ranking selects subsets of a registry by rank, name or package.
package ranking

import (
	"strings"

	"github.com/phobologic/classdoc/internal/graph"
	"github.com/phobologic/classdoc/internal/model"
)

// TopNames returns the simple names of the n highest-ranked types.
// If n is <= 0 or >= len(ranked), every ranked type is returned.
// Types sharing a simple name are listed once.
func TopNames(reg *model.Registry, ranked []graph.Scored, n int) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, s := range ranked {
		if n > 0 && len(names) >= n {
			break
		}
		m, ok := reg.Get(s.Key)
		if !ok {
			continue
		}
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}
		names = append(names, m.Name)
	}
	return names
}

// SelectNames returns a registry holding only the types whose simple name is
// listed in names. Listed names missing from reg are ignored.
func SelectNames(reg *model.Registry, names []string) *model.Registry {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	out := model.NewRegistry()
	for _, m := range reg.Models() {
		if _, ok := want[m.Name]; ok {
			out.Put(m)
		}
	}
	return out
}

// FilterByType returns a registry holding the types whose name contains
// substr (case-insensitive) plus every type directly connected to one of
// them by an edge.
func FilterByType(reg *model.Registry, edges []model.Edge, substr string) *model.Registry {
	lower := strings.ToLower(substr)

	matched := make(map[string]struct{})
	for _, m := range reg.Models() {
		if strings.Contains(strings.ToLower(m.Name), lower) {
			matched[m.Key()] = struct{}{}
		}
	}

	// Expand to types on the other end of an edge touching a match.
	related := make(map[string]struct{})
	for _, e := range edges {
		if _, ok := matched[e.From]; ok {
			related[e.To] = struct{}{}
		}
		if _, ok := matched[e.To]; ok {
			related[e.From] = struct{}{}
		}
	}

	out := model.NewRegistry()
	for _, m := range reg.Models() {
		_, isMatched := matched[m.Key()]
		_, isRelated := related[m.Key()]
		if isMatched || isRelated {
			out.Put(m)
		}
	}
	return out
}

// FilterByPackage returns a registry holding the types whose package
// contains substr (case-insensitive).
func FilterByPackage(reg *model.Registry, substr string) *model.Registry {
	lower := strings.ToLower(substr)
	out := model.NewRegistry()
	for _, m := range reg.Models() {
		if strings.Contains(strings.ToLower(m.Package), lower) {
			out.Put(m)
		}
	}
	return out
}

// FilterEdges keeps the edges whose ends are both in reg.
func FilterEdges(reg *model.Registry, edges []model.Edge) []model.Edge {
	var out []model.Edge
	for _, e := range edges {
		_, fromOK := reg.Get(e.From)
		_, toOK := reg.Get(e.To)
		if fromOK && toOK {
			out = append(out, e)
		}
	}
	return out
}
