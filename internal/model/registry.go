package model

import "sort"

// Registry maps fully-qualified type names to their models.
//
// Put overwrites an existing entry with the same key: when two files declare
// the same package and type name, the one scanned last is kept.
type Registry struct {
	entries map[string]*SourceModel
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*SourceModel)}
}

// Put inserts m under m.Key(), replacing any previous entry.
func (r *Registry) Put(m *SourceModel) {
	r.entries[m.Key()] = m
}

// Get returns the model stored under key.
func (r *Registry) Get(key string) (*SourceModel, bool) {
	m, ok := r.entries[key]
	return m, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Models returns every model sorted by package, then name.
func (r *Registry) Models() []*SourceModel {
	out := make([]*SourceModel, 0, len(r.entries))
	for _, m := range r.entries {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Package != out[j].Package {
			return out[i].Package < out[j].Package
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SourcePath < out[j].SourcePath
	})
	return out
}

// Packages groups the registry by package. The result is built fresh on
// every call and owned by the caller.
func (r *Registry) Packages() []PackageGroup {
	var groups []PackageGroup
	for _, m := range r.Models() {
		if n := len(groups); n > 0 && groups[n-1].Name == m.Package {
			groups[n-1].Members = append(groups[n-1].Members, m)
			continue
		}
		groups = append(groups, PackageGroup{Name: m.Package, Members: []*SourceModel{m}})
	}
	return groups
}

// Resolve finds the registry key of the type called name, preferring a
// declaration in pkg and falling back to the first match in sorted order.
func (r *Registry) Resolve(name, pkg string) (string, bool) {
	if name == "" {
		return "", false
	}
	if m, ok := r.entries[pkg+"."+name]; ok {
		return m.Key(), true
	}
	for _, m := range r.Models() {
		if m.Name == name {
			return m.Key(), true
		}
	}
	return "", false
}

// HasName reports whether any registered type is called name.
func (r *Registry) HasName(name string) bool {
	_, ok := r.Resolve(name, "")
	return ok
}
