// Package render turns a project registry into documentation artifacts.
//
// Every renderer reads the registry grouped by package, with packages and
// members in sorted order, and never modifies a model. Rendering the same
// registry twice produces identical bytes.
package render

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/phobologic/classdoc/internal/model"
)

// ErrUnavailable marks a renderer whose external capability is missing.
var ErrUnavailable = errors.New("renderer unavailable")

// Renderer produces one artifact from the registry.
type Renderer interface {
	// Name identifies the renderer in progress output and --only filters.
	Name() string
	Render(w io.Writer, reg *model.Registry) error
}

// Checker is implemented by renderers that depend on something outside the
// process. Check returns an error wrapping ErrUnavailable when that
// dependency is missing.
type Checker interface {
	Check() error
}

// Limits for truncated member lists.
const (
	CardMemberLimit       = 10
	GalleryLimit          = 5
	GalleryCollabLimit    = 8
	DiagramAttributeLimit = 8
)

// Options carries text shared by the renderers.
type Options struct {
	Title      string // Project title shown under each artifact heading
	Heuristics Heuristics
}

// DefaultTitle is used when no project title is configured.
const DefaultTitle = "Class Design"

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

// truncate returns at most limit items and how many were left out.
func truncate(items []string, limit int) ([]string, int) {
	if len(items) <= limit {
		return items, 0
	}
	return items[:limit], len(items) - limit
}

// MoreMarker is the line shown in place of n omitted entries.
func MoreMarker(n int) string {
	return fmt.Sprintf("+%d more", n)
}

// PackageLabel is the heading used for a package; the unnamed package gets a
// placeholder.
func PackageLabel(name string) string {
	if name == "" {
		return "(default package)"
	}
	return name
}

func attributeStrings(attrs []model.Attribute) []string {
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.String()
	}
	return out
}

func methodStrings(methods []model.Method) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = m.String()
	}
	return out
}
