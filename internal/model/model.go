// Package model defines core data structures for classdoc.
package model

import (
	"sort"
)

// Kind is the declaration keyword of a scanned type.
type Kind string

const (
	Class     Kind = "class"
	Interface Kind = "interface"
	Enum      Kind = "enum"
)

// Attribute is one private field declaration: "Type name".
type Attribute struct {
	Type string
	Name string
}

func (a Attribute) String() string {
	return a.Type + " " + a.Name
}

// Method is one public operation. Parameters are not retained.
type Method struct {
	ReturnType string
	Name       string
}

func (m Method) String() string {
	return m.ReturnType + " " + m.Name + "()"
}

// SourceModel is the structural description of one declared type.
type SourceModel struct {
	Name             string
	Package          string
	Kind             Kind
	Attributes       []Attribute
	Methods          []Method
	ProjectImports   []string
	Responsibilities []string
	Collaborators    map[string]struct{}
	Extends          string
	Implements       []string
	SourcePath       string // Relative to the scan root
}

// Key returns the fully-qualified registry key, package + "." + name.
// A type without a package declaration yields ".Name".
func (m *SourceModel) Key() string {
	return m.Package + "." + m.Name
}

// AddCollaborator records name as a collaborator. The type's own name is
// never recorded.
func (m *SourceModel) AddCollaborator(name string) {
	if name == "" || name == m.Name {
		return
	}
	if m.Collaborators == nil {
		m.Collaborators = make(map[string]struct{})
	}
	m.Collaborators[name] = struct{}{}
}

// SortedCollaborators returns the collaborator set in lexical order.
func (m *SourceModel) SortedCollaborators() []string {
	out := make([]string, 0, len(m.Collaborators))
	for c := range m.Collaborators {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ImplementsName reports whether name appears in the implements list.
func (m *SourceModel) ImplementsName(name string) bool {
	for _, i := range m.Implements {
		if i == name {
			return true
		}
	}
	return false
}

// EdgeKind labels a relationship between two registry entries.
type EdgeKind string

const (
	Extends    EdgeKind = "extends"
	Implements EdgeKind = "implements"
	Uses       EdgeKind = "uses"
	Depends    EdgeKind = "depends"
)

// Edge is a directed relationship used for diagram rendering.
// From and To are registry keys; Label is the text shown on the arrow.
type Edge struct {
	From  string
	To    string
	Kind  EdgeKind
	Label string
}

// PackageGroup is one package with its members sorted by name.
type PackageGroup struct {
	Name    string
	Members []*SourceModel
}
