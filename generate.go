package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/phobologic/classdoc/internal/config"
	"github.com/phobologic/classdoc/internal/diagram"
	"github.com/phobologic/classdoc/internal/model"
	"github.com/phobologic/classdoc/internal/registry"
	"github.com/phobologic/classdoc/internal/render"
)

func newGenerateCmd(a *app) *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "generate [root]",
		Short: "Write CRC cards, the card gallery, the design document and class diagrams",
		Long: `Scan the Java sources under root (default src/main/java) and write every
artifact into the output directory, overwriting earlier runs.

Renderers: cards, gallery, document, diagrams, combined, focus. The document
renderer needs pandoc on PATH and is skipped when it is missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.generate(args, only)
		},
	}

	cmd.Flags().StringP("out", "o", "", "output directory (default .)")
	_ = a.v.BindPFlag("out", cmd.Flags().Lookup("out"))
	cmd.Flags().StringSliceVar(&only, "only", nil, "comma-separated renderers to run (default all)")
	return cmd
}

// artifact pairs a renderer with the file it writes.
type artifact struct {
	file     string
	renderer render.Renderer
}

func artifacts(cfg *config.Config) []artifact {
	opts := render.Options{Title: cfg.Title, Heuristics: cfg.Heuristic()}
	layers := cfg.GraphLayers()
	return []artifact{
		{cfg.Outputs.Cards, &render.Cards{Options: opts}},
		{cfg.Outputs.Gallery, &render.Gallery{Options: opts}},
		{cfg.Outputs.Document, &render.Document{Options: opts, Converter: cfg.Document.Converter}},
		{cfg.Outputs.Diagrams, &diagram.Packages{Title: cfg.Title}},
		{cfg.Outputs.Combined, &diagram.Combined{Title: cfg.Title, Layers: layers}},
		{cfg.Outputs.Focus, &diagram.Focus{
			Title:     cfg.Focus.Title,
			Types:     cfg.Focus.Types,
			Relations: cfg.Focus.Relations,
			Layers:    layers,
			AutoLimit: cfg.Focus.AutoLimit,
		}},
	}
}

// selectArtifacts keeps the artifacts whose renderer is named in only, in
// their fixed order. An empty only keeps all of them.
func selectArtifacts(all []artifact, only []string) ([]artifact, error) {
	if len(only) == 0 {
		return all, nil
	}

	names := make([]string, len(all))
	known := make(map[string]bool, len(all))
	for i, art := range all {
		names[i] = art.renderer.Name()
		known[names[i]] = true
	}

	want := make(map[string]bool, len(only))
	for _, name := range only {
		name = strings.TrimSpace(name)
		if !known[name] {
			return nil, errors.WithHintf(
				errors.Newf("unknown renderer %q", name),
				"choose from %s", strings.Join(names, ", "),
			)
		}
		want[name] = true
	}

	var kept []artifact
	for _, art := range all {
		if want[art.renderer.Name()] {
			kept = append(kept, art)
		}
	}
	return kept, nil
}

func (a *app) generate(args, only []string) error {
	cfg, logger, err := a.load(args)
	if err != nil {
		return err
	}
	selected, err := selectArtifacts(artifacts(cfg), only)
	if err != nil {
		return err
	}

	reg, stats, err := scan(cfg, logger)
	if errors.Is(err, registry.ErrMissingRoot) {
		fmt.Fprintf(a.stdout, "%s source directory not found: %s\n", warnStyle.Render("!"), cfg.Root)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s %d types from %d files in %s\n",
		headerStyle.Render("Scanned"), reg.Len(), stats.Files, pathStyle.Render(cfg.Root))

	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", cfg.Out)
	}

	for _, art := range selected {
		if c, ok := art.renderer.(render.Checker); ok {
			if err := c.Check(); err != nil {
				if !errors.Is(err, render.ErrUnavailable) {
					return err
				}
				fmt.Fprintf(a.stdout, "%s skipped %s: %v\n", warnStyle.Render("!"), art.renderer.Name(), err)
				for _, hint := range errors.GetAllHints(err) {
					fmt.Fprintf(a.stdout, "  %s\n", hintStyle.Render(hint))
				}
				continue
			}
		}

		path := filepath.Join(cfg.Out, art.file)
		if err := writeArtifact(path, art.renderer, reg); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s %s %s\n",
			successStyle.Render("✓"), path, pathStyle.Render("("+art.renderer.Name()+")"))
	}
	return nil
}

// writeArtifact truncates path and renders into it.
func writeArtifact(path string, r render.Renderer, reg *model.Registry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()

	if err := r.Render(f, reg); err != nil {
		return errors.Wrapf(err, "rendering %s", path)
	}
	return nil
}
