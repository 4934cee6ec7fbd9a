package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/classdoc/internal/model"
	"github.com/phobologic/classdoc/internal/parse"
)

func newBuilder() *Builder {
	return &Builder{Scanner: parse.NewPatternScanner(parse.Options{})}
}

func TestScanFooBar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a/b/Foo.java", "package a.b; public class Foo {}")
	writeFile(t, dir, "a/b/Bar.java", "package a.b; public class Bar { private Foo f; }")

	reg, stats, err := newBuilder().Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 2, stats.Models)

	bar, ok := reg.Get("a.b.Bar")
	require.True(t, ok)
	assert.Equal(t, []model.Attribute{{Type: "Foo", Name: "f"}}, bar.Attributes)
	assert.Equal(t, "a/b/Bar.java", bar.SourcePath)

	_, ok = reg.Get("a.b.Foo")
	assert.True(t, ok)
}

func TestScanSkipsFilesWithoutModel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Foo.java", "package a; public class Foo {}")
	writeFile(t, dir, "package-info.java", "/** docs */\npackage a;")
	writeFile(t, dir, "Internal.java", "package a; class Internal {}")

	reg, stats, err := newBuilder().Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 2, stats.NoModel)
}

func TestScanLastWriteWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a/Dup.java", "package x; public class Dup { private int first; }")
	writeFile(t, dir, "b/Dup.java", "package x; public class Dup { private int second; }")

	reg, _, err := newBuilder().Scan(dir)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	m, ok := reg.Get("x.Dup")
	require.True(t, ok)
	assert.Equal(t, "b/Dup.java", m.SourcePath)
	assert.Equal(t, "second", m.Attributes[0].Name)
}

func TestScanExcludesTestPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "App.java", "public class App {}")
	writeFile(t, dir, "AppTest.java", "public class AppTest {}")

	reg, _, err := newBuilder().Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	_, ok := reg.Get(".App")
	assert.True(t, ok)
}

func TestScanSkipsInvalidUTF8(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Good.java", "public class Good {}")
	writeFile(t, dir, "Bad.java", "public class Bad { String s = \"\xff\xfe\"; }")

	reg, stats, err := newBuilder().Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, stats.Skipped)
}

func TestScanMissingRoot(t *testing.T) {
	t.Parallel()

	_, _, err := newBuilder().Scan(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRoot))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestScanDerivesNamespace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "com/acme/models/User.java", "package com.acme.models; public class User {}")
	writeFile(t, dir, "com/acme/services/UserService.java", `package com.acme.services;
import com.acme.models.User;
import org.thirdparty.PaymentService;
import java.util.List;
public class UserService {}`)

	b := newBuilder()
	b.DeriveNamespace = true
	reg, _, err := b.Scan(dir)
	require.NoError(t, err)

	svc, ok := reg.Get("com.acme.services.UserService")
	require.True(t, ok)
	assert.Equal(t, []string{"com.acme.models.User"}, svc.ProjectImports)
}

func TestScanKeepsImportsWithoutDeriving(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Svc.java", "package com.acme;\nimport org.thirdparty.PaymentService;\npublic class Svc {}")

	reg, _, err := newBuilder().Scan(dir)
	require.NoError(t, err)
	svc, ok := reg.Get("com.acme.Svc")
	require.True(t, ok)
	assert.Equal(t, []string{"org.thirdparty.PaymentService"}, svc.ProjectImports)
}

func TestCommonNamespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		packages []string
		want     string
	}{
		{"shared prefix", []string{"com.acme.models", "com.acme.services.impl"}, "com.acme"},
		{"single package", []string{"com.acme.models"}, "com.acme.models"},
		{"nothing shared", []string{"com.acme", "org.other"}, ""},
		{"default package ignored", []string{"", "com.acme.a", "com.acme.b"}, "com.acme"},
		{"empty registry", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := model.NewRegistry()
			for i, pkg := range tt.packages {
				reg.Put(&model.SourceModel{Name: fmt.Sprintf("T%d", i), Package: pkg})
			}
			assert.Equal(t, tt.want, CommonNamespace(reg))
		})
	}
}

func TestFilterImportsWithoutNamespace(t *testing.T) {
	t.Parallel()

	reg := model.NewRegistry()
	reg.Put(&model.SourceModel{Name: "User", Package: "com.acme"})
	svc := &model.SourceModel{Name: "Svc", Package: "org.other",
		ProjectImports: []string{"com.acme.User", "java.util.List"}}
	reg.Put(svc)

	FilterImports(reg, "")
	assert.Equal(t, []string{"com.acme.User"}, svc.ProjectImports)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
