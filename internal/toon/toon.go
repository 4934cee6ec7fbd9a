// Package toon encodes the project registry in TOON (Token-Oriented Object
// Notation), a compact tabular text format.
package toon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/phobologic/classdoc/internal/graph"
	"github.com/phobologic/classdoc/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode renders the registry, its edges and the type ranks as TOON.
// Types appear in registry order; ranked may be nil.
func Encode(root string, reg *model.Registry, edges []model.Edge, ranked []graph.Scored) string {
	rank := make(map[string]float64, len(ranked))
	for _, s := range ranked {
		rank[s.Key] = s.Rank
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(root)))

	models := reg.Models()

	var typeRows, attrRows, methodRows, collabRows, respRows [][]string
	for _, m := range models {
		key := m.Key()
		typeRows = append(typeRows, []string{
			key,
			string(m.Kind),
			m.SourcePath,
			m.Extends,
			strings.Join(m.Implements, " "),
			fmt.Sprintf("%.4f", rank[key]),
		})
		for _, a := range m.Attributes {
			attrRows = append(attrRows, []string{key, a.Name, a.Type})
		}
		for _, fn := range m.Methods {
			methodRows = append(methodRows, []string{key, fn.Name, fn.ReturnType})
		}
		for _, c := range m.SortedCollaborators() {
			collabRows = append(collabRows, []string{key, c})
		}
		for _, r := range m.Responsibilities {
			respRows = append(respRows, []string{key, r})
		}
	}

	parts = append(parts, formatTabular("types", []string{"key", "kind", "file", "extends", "implements", "rank"}, typeRows))
	parts = append(parts, formatTabular("attributes", []string{"type", "name", "declared"}, attrRows))
	parts = append(parts, formatTabular("methods", []string{"type", "name", "returns"}, methodRows))
	parts = append(parts, formatTabular("collaborators", []string{"type", "collaborator"}, collabRows))

	if len(respRows) > 0 {
		parts = append(parts, formatTabular("responsibilities", []string{"type", "text"}, respRows))
	}

	var edgeRows [][]string
	for _, e := range edges {
		edgeRows = append(edgeRows, []string{e.From, e.To, string(e.Kind)})
	}
	parts = append(parts, formatTabular("edges", []string{"from", "to", "kind"}, edgeRows))

	return strings.Join(parts, "\n")
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	switch {
	case value == "":
		return `""`
	case value != strings.TrimSpace(value),
		strings.ContainsAny(value, "\n\r\t"):
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}
	if looksNumeric.MatchString(value) {
		return value
	}
	if needsQuoting.MatchString(value) || strings.HasPrefix(value, "-") {
		return quote(value)
	}
	return value
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quote(value string) string {
	return `"` + quoteReplacer.Replace(value) + `"`
}
