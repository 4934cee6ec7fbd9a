// Package parse turns one source file into a model.SourceModel.
//
// Two scanners are provided. PatternScanner recovers structure with regular
// expressions over the raw text and is the default. TreeSitterScanner walks a
// tree-sitter syntax tree and can replace it without changes elsewhere.
package parse

import (
	"regexp"
	"strings"

	"github.com/phobologic/classdoc/internal/model"
)

// Scanner extracts the primary public type declared in a file.
// It returns false when src holds no public class, interface or enum
// declaration; that is not an error.
type Scanner interface {
	Scan(path string, src []byte) (*model.SourceModel, bool)
}

// DefaultMarkers are the doc-comment markers that flag responsibility lines.
var DefaultMarkers = []string{"Responsibility", "Trách nhiệm"}

// Options configures both scanners.
type Options struct {
	// Namespace is the project root namespace. Imports not containing it
	// are discarded. An empty namespace keeps every import.
	Namespace string
	// Markers flag responsibility lines in /** */ comments.
	// DefaultMarkers is used when empty.
	Markers []string
}

func (o Options) markers() []string {
	if len(o.Markers) == 0 {
		return DefaultMarkers
	}
	return o.Markers
}

func (o Options) keepImport(name string) bool {
	return strings.Contains(name, o.Namespace)
}

var (
	docCommentRe   = regexp.MustCompile(`(?s)/\*\*.*?\*/`)
	commentPunctRe = regexp.MustCompile(`[*/]`)
)

// Responsibilities returns the responsibility lines found in the /** */
// comments of src. Every line of a qualifying comment that mentions a marker
// becomes one entry, with '*' and '/' characters removed.
func Responsibilities(src string, markers []string) []string {
	var out []string
	for _, c := range docCommentRe.FindAllString(src, -1) {
		out = append(out, commentResponsibilities(c, markers)...)
	}
	return out
}

func commentResponsibilities(comment string, markers []string) []string {
	if !containsAny(comment, markers) {
		return nil
	}
	var out []string
	for _, line := range strings.Split(comment, "\n") {
		if !containsAny(line, markers) {
			continue
		}
		desc := strings.TrimSpace(commentPunctRe.ReplaceAllString(line, ""))
		if desc != "" {
			out = append(out, desc)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// splitList splits a comma-separated list, trimming entries and dropping
// empty ones.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
