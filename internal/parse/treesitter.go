package parse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/classdoc/internal/lang"
	"github.com/phobologic/classdoc/internal/model"
)

var declKinds = map[string]model.Kind{
	"class_declaration":     model.Class,
	"interface_declaration": model.Interface,
	"enum_declaration":      model.Enum,
}

// TreeSitterScanner extracts structure from a Java syntax tree.
//
// It fills the same fields as PatternScanner from grammar nodes instead of
// text patterns, so comments and string literals never contribute members.
// Methods declared in an interface body count as public.
// A TreeSitterScanner is not safe for concurrent use.
type TreeSitterScanner struct {
	Options Options

	parser *sitter.Parser
}

// NewTreeSitterScanner returns a scanner backed by the Java grammar.
func NewTreeSitterScanner(opts Options) *TreeSitterScanner {
	return &TreeSitterScanner{
		Options: opts,
		parser:  lang.Languages["java"].NewParser(),
	}
}

// Scan implements Scanner.
func (s *TreeSitterScanner) Scan(path string, src []byte) (*model.SourceModel, bool) {
	if len(src) == 0 {
		return nil, false
	}

	tree, err := s.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, false
	}
	defer tree.Close()

	root := tree.RootNode()
	decl := findPublicDecl(root, src)
	if decl == nil {
		return nil, false
	}

	m := &model.SourceModel{
		Name:       lang.NodeText(decl.ChildByFieldName("name"), src),
		Kind:       declKinds[decl.Type()],
		SourcePath: path,
	}
	m.Extends, m.Implements = supertypes(decl, src)

	var comments []string
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "package_declaration":
			if m.Package == "" {
				m.Package = qualifiedName(n, src)
			}
		case "import_declaration":
			if name := qualifiedName(n, src); name != "" && s.Options.keepImport(name) {
				m.ProjectImports = append(m.ProjectImports, name)
			}
		case "field_declaration":
			if hasModifier(n, src, "private") {
				m.Attributes = append(m.Attributes, fieldAttributes(n, src)...)
			}
		case "method_declaration":
			if hasModifier(n, src, "public") || inInterfaceBody(n) {
				m.Methods = append(m.Methods, model.Method{
					ReturnType: compact(lang.NodeText(n.ChildByFieldName("type"), src)),
					Name:       lang.NodeText(n.ChildByFieldName("name"), src),
				})
			}
		case "block_comment", "comment":
			if text := lang.NodeText(n, src); strings.HasPrefix(text, "/**") {
				comments = append(comments, text)
			}
		}
	})

	for _, c := range comments {
		m.Responsibilities = append(m.Responsibilities, commentResponsibilities(c, s.Options.markers())...)
	}

	return m, true
}

// walk visits n and its descendants in source order.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}

func findPublicDecl(root *sitter.Node, src []byte) *sitter.Node {
	var found *sitter.Node
	walk(root, func(n *sitter.Node) {
		if found != nil {
			return
		}
		if _, ok := declKinds[n.Type()]; ok && hasModifier(n, src, "public") {
			found = n
		}
	})
	return found
}

func hasModifier(decl *sitter.Node, src []byte, mod string) bool {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child.Type() != "modifiers" {
			continue
		}
		for _, f := range strings.Fields(lang.NodeText(child, src)) {
			if f == mod {
				return true
			}
		}
	}
	return false
}

func inInterfaceBody(n *sitter.Node) bool {
	p := n.Parent()
	return p != nil && p.Type() == "interface_body"
}

// supertypes returns the extended type and implemented interfaces of decl.
// For an interface the first extended interface fills extends.
func supertypes(decl *sitter.Node, src []byte) (string, []string) {
	var extends string
	var implements []string
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		switch child.Type() {
		case "superclass":
			if names := typeNames(child, src); len(names) > 0 {
				extends = names[0]
			}
		case "extends_interfaces":
			if names := typeNames(child, src); len(names) > 0 && extends == "" {
				extends = names[0]
			}
		case "super_interfaces":
			implements = append(implements, typeNames(child, src)...)
		}
	}
	return extends, implements
}

// typeNames returns the bare identifiers of the types listed under n,
// dropping type arguments.
func typeNames(n *sitter.Node, src []byte) []string {
	var out []string
	var collect func(*sitter.Node)
	collect = func(c *sitter.Node) {
		switch c.Type() {
		case "type_identifier":
			out = append(out, lang.NodeText(c, src))
		case "generic_type", "scoped_type_identifier":
			// The first named child is the raw type; skip type arguments.
			if c.NamedChildCount() > 0 {
				collect(c.NamedChild(0))
			}
		default:
			for i := 0; i < int(c.NamedChildCount()); i++ {
				collect(c.NamedChild(i))
			}
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		collect(n.NamedChild(i))
	}
	return out
}

func qualifiedName(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "scoped_identifier", "identifier":
			return lang.NodeText(child, src)
		}
	}
	return ""
}

func fieldAttributes(n *sitter.Node, src []byte) []model.Attribute {
	typ := compact(lang.NodeText(n.ChildByFieldName("type"), src))
	var out []model.Attribute
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		out = append(out, model.Attribute{
			Type: typ,
			Name: lang.NodeText(child.ChildByFieldName("name"), src),
		})
	}
	return out
}

// compact collapses runs of whitespace in a type to single spaces.
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
