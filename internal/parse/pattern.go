package parse

import (
	"regexp"

	"github.com/phobologic/classdoc/internal/model"
)

// Identifier characters match Java's letters and digits, not just ASCII.
const word = `[\p{L}\p{N}_]`

var (
	packageRe    = regexp.MustCompile(`package\s+([\p{L}\p{N}_.]+);`)
	signatureRe  = regexp.MustCompile(`public\s+(class|interface|enum)\s+(` + word + `+)`)
	extendsRe    = regexp.MustCompile(`extends\s+(` + word + `+)`)
	implementsRe = regexp.MustCompile(`implements\s+([\p{L}\p{N}_,\s]+)`)
	importRe     = regexp.MustCompile(`import\s+([\p{L}\p{N}_.]+);`)
	attributeRe  = regexp.MustCompile(`private\s+(?:static\s+)?(?:final\s+)?(` + word + `+(?:<.*?>)?)\s+(` + word + `+)\s*[;=]`)
	methodRe     = regexp.MustCompile(`public\s+(?:static\s+)?(?:<.*?>\s+)?(` + word + `+(?:<.*?>)?)\s+(` + word + `+)\s*\([^)]*\)`)
)

// PatternScanner extracts structure with independent regular expressions.
// Each rule tolerates a missing match and falls back to an empty value.
//
// Known limitations: extends is taken from the first "extends X" anywhere in
// the file (so a bounded generic or a second declaration can supply it),
// patterns match inside comments and strings, and parameter lists are
// dropped so overloads collapse to identical entries.
type PatternScanner struct {
	Options Options
}

// NewPatternScanner returns a PatternScanner with the given options.
func NewPatternScanner(opts Options) *PatternScanner {
	return &PatternScanner{Options: opts}
}

// Scan implements Scanner.
func (s *PatternScanner) Scan(path string, src []byte) (*model.SourceModel, bool) {
	text := string(src)

	sig := signatureRe.FindStringSubmatch(text)
	if sig == nil {
		return nil, false
	}

	m := &model.SourceModel{
		Name:       sig[2],
		Kind:       model.Kind(sig[1]),
		SourcePath: path,
	}

	if pkg := packageRe.FindStringSubmatch(text); pkg != nil {
		m.Package = pkg[1]
	}
	if ext := extendsRe.FindStringSubmatch(text); ext != nil {
		m.Extends = ext[1]
	}
	if impl := implementsRe.FindStringSubmatch(text); impl != nil {
		m.Implements = splitList(impl[1])
	}

	for _, imp := range importRe.FindAllStringSubmatch(text, -1) {
		if s.Options.keepImport(imp[1]) {
			m.ProjectImports = append(m.ProjectImports, imp[1])
		}
	}
	for _, a := range attributeRe.FindAllStringSubmatch(text, -1) {
		m.Attributes = append(m.Attributes, model.Attribute{Type: a[1], Name: a[2]})
	}
	for _, fn := range methodRe.FindAllStringSubmatch(text, -1) {
		m.Methods = append(m.Methods, model.Method{ReturnType: fn[1], Name: fn[2]})
	}

	m.Responsibilities = Responsibilities(text, s.Options.markers())

	return m, true
}
