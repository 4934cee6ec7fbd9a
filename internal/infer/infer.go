// Package infer enriches registry models with collaborators.
package infer

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/phobologic/classdoc/internal/logging"
	"github.com/phobologic/classdoc/internal/model"
)

// DefaultSuffixes mark an imported type as a collaborator by name suffix.
var DefaultSuffixes = []string{"Service", "Model"}

// DefaultRoles are infrastructure types always treated as collaborators when imported.
var DefaultRoles = []string{"DatabaseConnector", "Helper", "AccessManager", "UserRole"}

// SourceReader returns the contents of a file by path.
type SourceReader interface {
	Read(path string) ([]byte, error)
}

// Options configures Run.
type Options struct {
	Root     string       // Scan root; model source paths are relative to it
	Reader   SourceReader // Used by the cross-reference pass
	Suffixes []string
	Roles    []string
	Strict   bool // Ignore comments and string literals in the cross-reference pass
	Logger   *log.Logger
}

// Run adds collaborators to every model in reg, in place.
//
// The import pass adds the trailing identifier of each project import whose
// name ends in a configured suffix or equals a configured role. The
// cross-reference pass then adds every other registered type whose name occurs
// as a whole word in the model's source text. A model never lists itself.
func Run(reg *model.Registry, opts Options) {
	logger := logging.OrDiscard(opts.Logger)
	suffixes := opts.Suffixes
	if suffixes == nil {
		suffixes = DefaultSuffixes
	}
	roles := opts.Roles
	if roles == nil {
		roles = DefaultRoles
	}

	models := reg.Models()
	for _, m := range models {
		importPass(m, suffixes, roles)
	}

	if opts.Reader == nil {
		return
	}
	h := NewTextualReferenceHeuristic(opts.Strict)
	for _, m := range models {
		src, err := opts.Reader.Read(filepath.Join(opts.Root, filepath.FromSlash(m.SourcePath)))
		if err != nil {
			logger.Warn("skipping cross-reference pass", "type", m.Key(), "err", err)
			continue
		}
		text := h.Prepare(string(src))
		for _, other := range models {
			if other.Name == m.Name {
				continue
			}
			if h.References(text, other.Name) {
				m.AddCollaborator(other.Name)
			}
		}
	}
}

func importPass(m *model.SourceModel, suffixes, roles []string) {
	for _, imp := range m.ProjectImports {
		name := imp[strings.LastIndex(imp, ".")+1:]
		if isCollaboratorName(name, suffixes, roles) {
			m.AddCollaborator(name)
		}
	}
}

func isCollaboratorName(name string, suffixes, roles []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	for _, r := range roles {
		if name == r {
			return true
		}
	}
	return false
}

var nonCodeRe = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*|"(?:\\.|[^"\\\n])*"|'(?:\\.|[^'\\\n])*'`)

// TextualReferenceHeuristic decides whether source text refers to a type by
// searching for the type name as a whole word.
//
// The match runs over raw text: a name that appears only in a comment or a
// string literal counts as a reference, as does an unrelated identifier in
// another scope that happens to share the name. Strict mode blanks comments
// and string literals first, which removes the first kind of false positive
// but not the second.
type TextualReferenceHeuristic struct {
	strict   bool
	patterns map[string]*regexp.Regexp
}

// NewTextualReferenceHeuristic returns a heuristic, optionally in strict mode.
func NewTextualReferenceHeuristic(strict bool) *TextualReferenceHeuristic {
	return &TextualReferenceHeuristic{strict: strict, patterns: make(map[string]*regexp.Regexp)}
}

// Prepare returns the text References should search. In strict mode comments
// and string literals are replaced by a single space each.
func (h *TextualReferenceHeuristic) Prepare(text string) string {
	if !h.strict {
		return text
	}
	return nonCodeRe.ReplaceAllString(text, " ")
}

// References reports whether name occurs as a whole word in text. Word
// characters are Unicode letters, digits and underscore.
func (h *TextualReferenceHeuristic) References(text, name string) bool {
	re, ok := h.patterns[name]
	if !ok {
		re = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(name) + `(?:[^\p{L}\p{N}_]|$)`)
		h.patterns[name] = re
	}
	return re.MatchString(text)
}
