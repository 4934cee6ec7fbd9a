// Package graph derives relationship edges between registered types and
// ranks types by how much the rest of the project leans on them.
package graph

import (
	"math"
	"sort"
	"strings"

	"github.com/phobologic/classdoc/internal/model"
)

// Resolve builds the extends, implements and uses edges of reg.
//
// Names resolve to a type in the same package first, then to the first
// match in registry order; names that resolve to nothing produce no edge.
// A uses edge is emitted for a field whose declared type names another
// registered type, unless that type is the declaring type itself or is
// already its supertype or one of its interfaces. Edges are deduplicated
// and returned in registry order, member by member.
func Resolve(reg *model.Registry) []model.Edge {
	var edges []model.Edge
	seen := make(map[model.Edge]struct{})
	add := func(e model.Edge) {
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}

	for _, m := range reg.Models() {
		self := m.Key()

		if target, ok := reg.Resolve(m.Extends, m.Package); ok && target != self {
			add(model.Edge{From: target, To: self, Kind: model.Extends, Label: "extends"})
		}

		for _, iface := range m.Implements {
			if target, ok := reg.Resolve(iface, m.Package); ok && target != self {
				add(model.Edge{From: target, To: self, Kind: model.Implements, Label: "implements"})
			}
		}

		for _, a := range m.Attributes {
			if a.Type == m.Name || a.Type == m.Extends || m.ImplementsName(a.Type) {
				continue
			}
			if target, ok := reg.Resolve(a.Type, m.Package); ok && target != self {
				add(model.Edge{From: self, To: target, Kind: model.Uses, Label: "uses"})
			}
		}
	}

	return edges
}

// Layers names the package fragments that place a type in an architectural
// layer. A type belongs to a layer when its package contains the fragment.
type Layers struct {
	Model   string
	Service string
	Impl    string
}

// DefaultLayers matches the conventional models / services / services.impl layout.
var DefaultLayers = Layers{Model: "models", Service: "services", Impl: "services.impl"}

// CrossLayer derives edges between layers from import lists.
//
// A model-layer type whose name occurs in the imports of a service-layer
// type yields "service uses model". A service implementation whose imports
// mention another type with "Service" in its name yields "implementation
// depends on service". Matching is plain substring containment over the
// joined import list, so a name that is a prefix of another imported name
// also matches.
func CrossLayer(reg *model.Registry, layers Layers) []model.Edge {
	models := reg.Models()
	var edges []model.Edge
	seen := make(map[model.Edge]struct{})
	add := func(e model.Edge) {
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}

	imports := make(map[string]string, len(models))
	for _, m := range models {
		imports[m.Key()] = strings.Join(m.ProjectImports, ",")
	}

	if layers.Model != "" && layers.Service != "" {
		for _, m := range models {
			if !strings.Contains(m.Package, layers.Model) {
				continue
			}
			for _, other := range models {
				if strings.Contains(other.Package, layers.Service) && strings.Contains(imports[other.Key()], m.Name) {
					add(model.Edge{From: other.Key(), To: m.Key(), Kind: model.Uses, Label: "uses"})
				}
			}
		}
	}

	if layers.Impl != "" {
		for _, m := range models {
			if !strings.Contains(m.Package, layers.Impl) {
				continue
			}
			for _, other := range models {
				if other.Name == m.Name || !strings.Contains(other.Name, "Service") {
					continue
				}
				if strings.Contains(imports[m.Key()], other.Name) {
					add(model.Edge{From: m.Key(), To: other.Key(), Kind: model.Depends, Label: "depends"})
				}
			}
		}
	}

	return edges
}

// Scored is a registry key with its rank.
type Scored struct {
	Key  string
	Rank float64
}

// Rank applies PageRank over edges and returns every registered type sorted
// by rank descending, ties broken by key. Rank flows from the dependent type
// to the type it depends on: from subtype to supertype and from user to used.
func Rank(reg *model.Registry, edges []model.Edge) []Scored {
	nodes := make(map[string]struct{}, reg.Len())
	for _, m := range reg.Models() {
		nodes[m.Key()] = struct{}{}
	}
	if len(nodes) == 0 {
		return nil
	}

	outEdges := make(map[string][]string)
	outDegree := make(map[string]int)
	for _, e := range edges {
		src, tgt := e.From, e.To
		if e.Kind == model.Extends || e.Kind == model.Implements {
			src, tgt = tgt, src
		}
		if _, ok := nodes[src]; !ok {
			continue
		}
		if _, ok := nodes[tgt]; !ok {
			continue
		}
		outEdges[src] = append(outEdges[src], tgt)
		outDegree[src]++
	}

	ranks := pageRank(nodes, outEdges, outDegree, 0.85, 100, 1e-6)

	out := make([]Scored, 0, len(ranks))
	for k, r := range ranks {
		out = append(out, Scored{Key: k, Rank: r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank > out[j].Rank
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func pageRank(
	nodes map[string]struct{},
	outEdges map[string][]string,
	outDegree map[string]int,
	alpha float64,
	maxIter int,
	tol float64,
) map[string]float64 {
	n := len(nodes)
	keys := sortedKeys(nodes)

	rank := make(map[string]float64, n)
	initial := 1.0 / float64(n)
	for _, node := range keys {
		rank[node] = initial
	}

	teleport := (1.0 - alpha) / float64(n)

	for iter := 0; iter < maxIter; iter++ {
		newRank := make(map[string]float64, n)

		// Dangling node contribution (nodes with no outgoing edges)
		var danglingSum float64
		for _, node := range keys {
			if outDegree[node] == 0 {
				danglingSum += rank[node]
			}
		}
		danglingContrib := alpha * danglingSum / float64(n)

		for _, node := range keys {
			newRank[node] = teleport + danglingContrib
		}

		// Sorted source order keeps float sums reproducible across runs.
		for _, src := range keys {
			targets := outEdges[src]
			if len(targets) == 0 {
				continue
			}
			contrib := alpha * rank[src] / float64(outDegree[src])
			for _, tgt := range targets {
				newRank[tgt] += contrib
			}
		}

		var diff float64
		for _, node := range keys {
			diff += math.Abs(newRank[node] - rank[node])
		}

		rank = newRank

		if diff < tol {
			break
		}
	}

	return rank
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
