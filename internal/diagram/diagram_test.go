package diagram

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/classdoc/internal/graph"
	"github.com/phobologic/classdoc/internal/model"
	"github.com/phobologic/classdoc/internal/render"
)

func registryOf(models ...*model.SourceModel) *model.Registry {
	reg := model.NewRegistry()
	for _, m := range models {
		reg.Put(m)
	}
	return reg
}

func renderString(t *testing.T, r render.Renderer, reg *model.Registry) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, reg))
	return buf.String()
}

func TestPackageDiagramFooBar(t *testing.T) {
	t.Parallel()

	reg := registryOf(
		&model.SourceModel{Name: "Foo", Package: "a.b", Kind: model.Class},
		&model.SourceModel{Name: "Bar", Package: "a.b", Kind: model.Class,
			Attributes: []model.Attribute{{Type: "Foo", Name: "f"}}},
	)

	groups := reg.Packages()
	require.Len(t, groups, 1)

	got := PackageDiagram(groups[0], graph.Resolve(reg))
	want := "classDiagram\n\n" +
		"    class Bar {\n" +
		"        -f : Foo\n" +
		"    }\n" +
		"    class Foo {\n" +
		"    }\n" +
		"\n" +
		"    Bar --> Foo : uses\n"
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "<|--")
	assert.NotContains(t, got, "<|..")
}

func TestPackageDiagramRestrictsEdgesToPackage(t *testing.T) {
	t.Parallel()

	reg := registryOf(
		&model.SourceModel{Name: "Base", Package: "core"},
		&model.SourceModel{Name: "Api", Package: "app", Kind: model.Interface},
		&model.SourceModel{Name: "Impl", Package: "app", Extends: "Base", Implements: []string{"Api", "Missing"}},
	)

	out := renderString(t, &Packages{Title: "Acme"}, reg)
	assert.True(t, strings.HasPrefix(out, "# Class Diagrams - Acme\n"))
	assert.Contains(t, out, "## Package: app\n\n```mermaid\nclassDiagram\n")
	assert.Contains(t, out, "    Api <|.. Impl : implements\n")
	// Base lives in another package.
	assert.NotContains(t, out, "Base <|-- Impl")
	assert.NotContains(t, out, "Missing")
	assert.Equal(t, 2, strings.Count(out, "```mermaid\n"))
}

func TestClassBlock(t *testing.T) {
	t.Parallel()

	m := &model.SourceModel{Name: "Store", Kind: model.Interface}
	for i := 0; i < 9; i++ {
		m.Attributes = append(m.Attributes, model.Attribute{Type: "List<String>", Name: fmt.Sprintf("a%d", i)})
	}

	var b strings.Builder
	writeClass(&b, m)
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "    class Store {\n        <<interface>>\n"))
	assert.Contains(t, out, "        -a7 : List~String~\n")
	assert.NotContains(t, out, "a8")
	assert.True(t, strings.HasSuffix(out, "        -a7 : List~String~\n        +1 more\n    }\n"))
	assert.Equal(t, render.DiagramAttributeLimit, strings.Count(out, "        -"))

	b.Reset()
	m.Attributes = m.Attributes[:render.DiagramAttributeLimit]
	writeClass(&b, m)
	assert.Contains(t, b.String(), "        -a7 : List~String~\n    }\n")
	assert.NotContains(t, b.String(), "more")

	b.Reset()
	writeClass(&b, &model.SourceModel{Name: "Role", Kind: model.Enum})
	assert.Equal(t, "    class Role {\n        <<enumeration>>\n    }\n", b.String())
}

func TestCombinedDiagram(t *testing.T) {
	t.Parallel()

	reg := registryOf(
		&model.SourceModel{Name: "User", Package: "com.acme.models"},
		&model.SourceModel{Name: "UserService", Package: "com.acme.services", Kind: model.Interface,
			ProjectImports: []string{"com.acme.models.User"}},
		&model.SourceModel{Name: "UserServiceImpl", Package: "com.acme.services.impl",
			Implements:     []string{"UserService"},
			ProjectImports: []string{"com.acme.services.UserService"},
			Attributes:     []model.Attribute{{Type: "User", Name: "cached"}}},
	)

	out := renderString(t, &Combined{Layers: graph.DefaultLayers}, reg)

	assert.Contains(t, out, "    %% Package: com.acme.models\n    class User {\n")
	assert.Contains(t, out, "    %% Relationships\n    UserService <|.. UserServiceImpl : implements\n")
	assert.Contains(t, out, "    UserService --> User : uses\n")
	assert.Contains(t, out, "    UserServiceImpl --> UserService : depends\n")
	// "User" is a substring of the imported UserService name.
	assert.Contains(t, out, "    UserServiceImpl --> User : uses\n")
	assert.Equal(t, 1, strings.Count(out, "UserServiceImpl --> User : uses"))
	assert.True(t, strings.HasSuffix(out, "```\n"))
}

func householdRegistry() *model.Registry {
	return registryOf(
		&model.SourceModel{Name: "HoGiaDinh", Package: "com.bluemoon.models"},
		&model.SourceModel{Name: "NhanKhau", Package: "com.bluemoon.models"},
		&model.SourceModel{Name: "TaiKhoan", Package: "com.bluemoon.models"},
		&model.SourceModel{Name: "HoGiaDinhService", Package: "com.bluemoon.services", Kind: model.Interface},
		&model.SourceModel{Name: "NhanKhauService", Package: "com.bluemoon.services", Kind: model.Interface},
		&model.SourceModel{
			Name:       "HoGiaDinhServiceImpl",
			Package:    "com.bluemoon.services.impl",
			Implements: []string{"HoGiaDinhService"},
			Attributes: []model.Attribute{
				{Type: "NhanKhauService", Name: "nhanKhauService"},
				{Type: "HoGiaDinh", Name: "current"},
				{Type: "String", Name: "name"},
			},
		},
	)
}

func TestFocusDefaults(t *testing.T) {
	t.Parallel()

	f := &Focus{Types: DefaultFocusTypes, Relations: DefaultFocusRelations, Layers: graph.DefaultLayers}
	out := renderString(t, f, householdRegistry())

	assert.True(t, strings.HasPrefix(out, "# Class Diagram - Household Module\n"))
	assert.Contains(t, out, "- **Models**: HoGiaDinh, NhanKhau\n")
	assert.Contains(t, out, "- **Services**: HoGiaDinhService, NhanKhauService, HoGiaDinhServiceImpl\n")
	assert.NotContains(t, out, "TaiKhoan")

	models := strings.Index(out, "%% Models")
	ifaces := strings.Index(out, "%% Service Interfaces")
	impls := strings.Index(out, "%% Service Implementations")
	rels := strings.Index(out, "%% Relationships")
	assert.True(t, models < ifaces && ifaces < impls && impls < rels, "section order")

	assert.Contains(t, out, "    HoGiaDinhService <|.. HoGiaDinhServiceImpl : implements\n")
	assert.Contains(t, out, "    NhanKhau ||--o| HoGiaDinh : \"maChuHo (soCCCD)\"\n")
	assert.Contains(t, out, "    HoGiaDinh ||--o{ NhanKhau : \"maHo\"\n")
	// Phong, PhieuThu and friends are not registered.
	assert.NotContains(t, out, "Phong")
	assert.NotContains(t, out, "PhieuThu")
	assert.Contains(t, out, "    HoGiaDinhServiceImpl --> HoGiaDinh : uses\n")
	assert.Contains(t, out, "    HoGiaDinhServiceImpl --> NhanKhauService : depends\n")
	assert.NotContains(t, out, "--> String")
}

func TestFocusAutoSelect(t *testing.T) {
	t.Parallel()

	reg := registryOf(
		&model.SourceModel{Name: "Hub", Package: "p"},
		&model.SourceModel{Name: "A", Package: "p", Attributes: []model.Attribute{{Type: "Hub", Name: "h"}}},
		&model.SourceModel{Name: "B", Package: "p", Attributes: []model.Attribute{{Type: "Hub", Name: "h"}}},
		&model.SourceModel{Name: "Lonely", Package: "q"},
	)

	out := renderString(t, &Focus{Title: "Core", AutoLimit: 1, Layers: graph.DefaultLayers}, reg)
	assert.Contains(t, out, "- **Other**: Hub\n")
	assert.Contains(t, out, "    %% Other Types\n    class Hub {\n")
	assert.NotContains(t, out, "class A ")
	assert.NotContains(t, out, "Lonely")
}

func TestRelationString(t *testing.T) {
	t.Parallel()
	r := Relation{From: "Phong", To: "HoGiaDinh", Cardinality: "||--o{", Label: "soPhong"}
	assert.Equal(t, `Phong ||--o{ HoGiaDinh : "soPhong"`, r.String())
}

func TestDiagramsDeterministic(t *testing.T) {
	t.Parallel()

	reg := householdRegistry()
	for _, r := range []render.Renderer{
		&Packages{},
		&Combined{Layers: graph.DefaultLayers},
		&Focus{Types: DefaultFocusTypes, Relations: DefaultFocusRelations, Layers: graph.DefaultLayers},
	} {
		assert.Equal(t, renderString(t, r, reg), renderString(t, r, reg), r.Name())
	}
}
