package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLastWriteWins(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Put(&SourceModel{Name: "Foo", Package: "a.b", SourcePath: "first/Foo.java"})
	r.Put(&SourceModel{Name: "Foo", Package: "a.b", SourcePath: "second/Foo.java"})

	require.Equal(t, 1, r.Len())
	got, ok := r.Get("a.b.Foo")
	require.True(t, ok)
	assert.Equal(t, "second/Foo.java", got.SourcePath)
}

func TestRegistryPackagesSorted(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Put(&SourceModel{Name: "Zeta", Package: "b"})
	r.Put(&SourceModel{Name: "Alpha", Package: "b"})
	r.Put(&SourceModel{Name: "Mid", Package: "a"})
	r.Put(&SourceModel{Name: "Loose", Package: ""})

	groups := r.Packages()
	require.Len(t, groups, 3)
	assert.Equal(t, "", groups[0].Name)
	assert.Equal(t, "a", groups[1].Name)
	assert.Equal(t, "b", groups[2].Name)
	require.Len(t, groups[2].Members, 2)
	assert.Equal(t, "Alpha", groups[2].Members[0].Name)
	assert.Equal(t, "Zeta", groups[2].Members[1].Name)
}

func TestRegistryResolvePrefersSamePackage(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Put(&SourceModel{Name: "Base", Package: "a"})
	r.Put(&SourceModel{Name: "Base", Package: "b"})

	key, ok := r.Resolve("Base", "b")
	require.True(t, ok)
	assert.Equal(t, "b.Base", key)

	key, ok = r.Resolve("Base", "c")
	require.True(t, ok)
	assert.Equal(t, "a.Base", key, "falls back to first match in sorted order")

	_, ok = r.Resolve("Missing", "a")
	assert.False(t, ok)
}

func TestAddCollaboratorSkipsSelf(t *testing.T) {
	t.Parallel()

	m := &SourceModel{Name: "Foo"}
	m.AddCollaborator("Foo")
	m.AddCollaborator("")
	m.AddCollaborator("Bar")
	m.AddCollaborator("Bar")

	assert.Equal(t, []string{"Bar"}, m.SortedCollaborators())
}

func TestKeyWithoutPackage(t *testing.T) {
	t.Parallel()

	m := &SourceModel{Name: "Foo"}
	assert.Equal(t, ".Foo", m.Key())
}
