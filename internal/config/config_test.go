package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/classdoc/internal/diagram"
	"github.com/phobologic/classdoc/internal/graph"
	"github.com/phobologic/classdoc/internal/render"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultRoot, cfg.Root)
	assert.Equal(t, ParserPattern, cfg.Parser)
	assert.Equal(t, []string{"java"}, cfg.Languages)
	assert.Equal(t, render.DefaultTitle, cfg.Title)
	assert.Equal(t, "CRC_Design_Auto.md", cfg.Outputs.Cards)
	assert.Equal(t, "Class_Diagram_Focus.md", cfg.Outputs.Focus)
	assert.Equal(t, diagram.DefaultFocusTypes, cfg.Focus.Types)
	assert.Equal(t, diagram.DefaultFocusRelations, cfg.Focus.Relations)
	assert.Equal(t, graph.DefaultLayers, cfg.GraphLayers())
	assert.Equal(t, render.DefaultHeuristics(), cfg.Heuristic())
	assert.Empty(t, cfg.ResolvedNamespace())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
root: app/src/main/java/com/acme
parser: treesitter
strict_refs: true
heuristics:
  entities: [Invoice]
  roles:
    - name: Mailer
      description: Sends mail
focus:
  title: Billing
  types: []
  relations:
    - from: Invoice
      to: Line
      cardinality: "||--o{"
      label: invoiceId
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, ParserTreeSitter, cfg.Parser)
	assert.True(t, cfg.StrictRefs)
	assert.Equal(t, "com.acme", cfg.ResolvedNamespace())
	assert.Equal(t, "Billing", cfg.Focus.Title)
	assert.Empty(t, cfg.Focus.Types)
	assert.Equal(t, []diagram.Relation{{From: "Invoice", To: "Line", Cardinality: "||--o{", Label: "invoiceId"}}, cfg.Focus.Relations)

	h := cfg.Heuristic()
	assert.Equal(t, []string{"Invoice"}, h.Entities)
	assert.Equal(t, map[string]string{"Mailer": "Sends mail"}, h.Roles)
}

func TestLoadFlagOverride(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "out: from-file\ntitle: File Title\n")
	v := New()
	v.Set("out", "from-flag")

	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Out)
	assert.Equal(t, "File Title", cfg.Title)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = Load(New(), writeConfig(t, "parser: antlr\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown parser "antlr"`)
}

func TestNamespaceFromRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		root string
		want string
	}{
		{"src/main/java", ""},
		{"src/main/java/", ""},
		{"src/main/java/com/bluemoon", "com.bluemoon"},
		{"/home/dev/app/src/main/java/com/acme/billing/", "com.acme.billing"},
		{"sources", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NamespaceFromRoot(tt.root), tt.root)
	}

	cfg := &Config{Root: "src/main/java/com/bluemoon", Namespace: "org.other"}
	assert.Equal(t, "org.other", cfg.ResolvedNamespace())
}
