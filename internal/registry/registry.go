// Package registry walks a source root and builds the project registry.
package registry

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/phobologic/classdoc/internal/discover"
	"github.com/phobologic/classdoc/internal/logging"
	"github.com/phobologic/classdoc/internal/model"
	"github.com/phobologic/classdoc/internal/parse"
	"github.com/phobologic/classdoc/internal/source"
)

// ErrMissingRoot is returned by Scan when the root directory does not exist.
var ErrMissingRoot = errors.New("source root not found")

// Builder scans a directory tree into a model.Registry.
type Builder struct {
	Scanner   parse.Scanner
	Cache     *source.Cache
	Logger    *log.Logger
	Languages []string // Empty means every registered language

	// DeriveNamespace refilters project imports after the scan against the
	// namespace shared by every scanned package. Set it when the scanner
	// ran without a namespace and so kept every import.
	DeriveNamespace bool
}

// Stats counts what happened to discovered files during a scan.
type Stats struct {
	Files   int // Files discovered
	Models  int // Files that produced a model
	NoModel int // Files without a public type declaration
	Skipped int // Unreadable or undecodable files
}

// Scan enumerates every source file under root in directory-walk order,
// skipping test paths, and registers the model each file yields. A file that
// cannot be read or decoded is logged and skipped.
func (b *Builder) Scan(root string) (*model.Registry, Stats, error) {
	logger := logging.OrDiscard(b.Logger)
	var stats Stats

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, stats, errors.WithHint(
			errors.Wrapf(ErrMissingRoot, "%s", root),
			"pass the Java source directory as an argument or set root in .classdoc.yaml",
		)
	}

	cache := b.Cache
	if cache == nil {
		if cache, err = source.NewCache(0); err != nil {
			return nil, stats, err
		}
	}

	files, err := discover.Files(root, b.Languages)
	if err != nil {
		return nil, stats, errors.Wrapf(err, "walking %s", root)
	}
	stats.Files = len(files)

	reg := model.NewRegistry()
	for _, f := range files {
		src, err := cache.Read(filepath.Join(root, f.Path))
		if err != nil {
			logger.Warn("skipping unreadable file", "path", f.Path, "err", err)
			stats.Skipped++
			continue
		}
		if !utf8.Valid(src) {
			logger.Warn("skipping file with invalid UTF-8", "path", f.Path)
			stats.Skipped++
			continue
		}

		m, ok := b.Scanner.Scan(filepath.ToSlash(f.Path), src)
		if !ok {
			logger.Debug("no public type declaration", "path", f.Path)
			stats.NoModel++
			continue
		}
		if prev, ok := reg.Get(m.Key()); ok {
			logger.Debug("duplicate type, keeping later file", "type", m.Key(), "previous", prev.SourcePath, "path", m.SourcePath)
		}
		reg.Put(m)
		stats.Models++
	}

	if b.DeriveNamespace {
		ns := CommonNamespace(reg)
		logger.Debug("derived namespace from packages", "namespace", ns)
		FilterImports(reg, ns)
	}

	logger.Debug("scan complete", "files", stats.Files, "types", reg.Len(), "skipped", stats.Skipped)
	return reg, stats, nil
}

// CommonNamespace returns the longest run of leading dotted segments shared
// by the packages of every registered type. Types in the default package
// are ignored.
func CommonNamespace(reg *model.Registry) string {
	var common []string
	first := true
	for _, m := range reg.Models() {
		if m.Package == "" {
			continue
		}
		segs := strings.Split(m.Package, ".")
		if first {
			common, first = segs, false
			continue
		}
		n := 0
		for n < len(common) && n < len(segs) && common[n] == segs[n] {
			n++
		}
		common = common[:n]
	}
	return strings.Join(common, ".")
}

// FilterImports drops every project import that is neither inside ns nor
// names a registered type.
func FilterImports(reg *model.Registry, ns string) {
	for _, m := range reg.Models() {
		kept := m.ProjectImports[:0]
		for _, imp := range m.ProjectImports {
			if inNamespace(imp, ns) || reg.HasName(imp[strings.LastIndex(imp, ".")+1:]) {
				kept = append(kept, imp)
			}
		}
		m.ProjectImports = kept
	}
}

func inNamespace(name, ns string) bool {
	return ns != "" && (name == ns || strings.HasPrefix(name, ns+"."))
}
