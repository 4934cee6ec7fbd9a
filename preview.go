package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/phobologic/classdoc/internal/ranking"
	"github.com/phobologic/classdoc/internal/render"
)

type previewOptions struct {
	pkgFilter string
	style     string
	width     int
}

func newPreviewCmd(a *app) *cobra.Command {
	var opts previewOptions

	cmd := &cobra.Command{
		Use:   "preview [root]",
		Short: "Show the CRC cards in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.preview(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pkgFilter, "package", "p", "", "show only packages containing this text")
	cmd.Flags().StringVar(&opts.style, "style", "auto", "glamour style: auto, dark, light, notty, ...")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 100, "wrap width (0 disables wrapping)")
	return cmd
}

func (a *app) preview(args []string, opts previewOptions) error {
	cfg, logger, err := a.load(args)
	if err != nil {
		return err
	}
	reg, _, err := scan(cfg, logger)
	if err != nil {
		return err
	}
	if opts.pkgFilter != "" {
		reg = ranking.FilterByPackage(reg, opts.pkgFilter)
	}

	var md strings.Builder
	cards := &render.Cards{Options: render.Options{Title: cfg.Title, Heuristics: cfg.Heuristic()}}
	if err := cards.Render(&md, reg); err != nil {
		return err
	}

	rendererOpts := []glamour.TermRendererOption{glamour.WithStandardStyle(opts.style)}
	if opts.width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.width))
	}
	r, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return errors.WithHint(errors.Wrap(err, "creating markdown renderer"), "try --style notty")
	}

	out, err := r.Render(md.String())
	if err != nil {
		return errors.Wrap(err, "rendering cards")
	}
	_, err = fmt.Fprint(a.stdout, out)
	return err
}
