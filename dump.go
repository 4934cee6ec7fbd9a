package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phobologic/classdoc/internal/graph"
	"github.com/phobologic/classdoc/internal/model"
	"github.com/phobologic/classdoc/internal/ranking"
	"github.com/phobologic/classdoc/internal/toon"
)

type dumpOptions struct {
	format     string
	typeFilter string
	pkgFilter  string
	top        int
}

func newDumpCmd(a *app) *cobra.Command {
	var opts dumpOptions

	cmd := &cobra.Command{
		Use:   "dump [root]",
		Short: "Print the scanned types and their relationships",
		Long: `Print the project registry, the resolved and cross-layer edges and each
type's rank on stdout, as TOON (default) or YAML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.dump(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "toon", "output format: toon or yaml")
	cmd.Flags().StringVarP(&opts.typeFilter, "type", "t", "", "keep types whose name contains this text, plus their neighbours")
	cmd.Flags().StringVarP(&opts.pkgFilter, "package", "p", "", "keep types whose package contains this text")
	cmd.Flags().IntVarP(&opts.top, "max-types", "n", 0, "keep only the n highest-ranked types")
	return cmd
}

func (a *app) dump(args []string, opts dumpOptions) error {
	if opts.format != "toon" && opts.format != "yaml" {
		return errors.WithHint(errors.Newf("unknown format %q", opts.format), "use toon or yaml")
	}

	cfg, logger, err := a.load(args)
	if err != nil {
		return err
	}
	reg, _, err := scan(cfg, logger)
	if err != nil {
		return err
	}

	edges := append(graph.Resolve(reg), graph.CrossLayer(reg, cfg.GraphLayers())...)
	if opts.typeFilter != "" {
		reg = ranking.FilterByType(reg, edges, opts.typeFilter)
	}
	if opts.pkgFilter != "" {
		reg = ranking.FilterByPackage(reg, opts.pkgFilter)
	}
	edges = ranking.FilterEdges(reg, edges)

	ranked := graph.Rank(reg, edges)
	if opts.top > 0 {
		reg = ranking.SelectNames(reg, ranking.TopNames(reg, ranked, opts.top))
		edges = ranking.FilterEdges(reg, edges)
	}

	if opts.format == "toon" {
		_, err = fmt.Fprintln(a.stdout, toon.Encode(cfg.Root, reg, edges, ranked))
		return err
	}

	out, err := yaml.Marshal(newDumpDoc(cfg.Root, reg, edges, ranked))
	if err != nil {
		return errors.Wrap(err, "encoding yaml")
	}
	_, err = a.stdout.Write(out)
	return err
}

type dumpDoc struct {
	Root  string     `yaml:"root"`
	Types []dumpType `yaml:"types"`
	Edges []dumpEdge `yaml:"edges"`
}

type dumpType struct {
	Key              string   `yaml:"key"`
	Kind             string   `yaml:"kind"`
	File             string   `yaml:"file"`
	Extends          string   `yaml:"extends,omitempty"`
	Implements       []string `yaml:"implements,omitempty"`
	Rank             float64  `yaml:"rank"`
	Attributes       []string `yaml:"attributes,omitempty"`
	Methods          []string `yaml:"methods,omitempty"`
	Collaborators    []string `yaml:"collaborators,omitempty"`
	Responsibilities []string `yaml:"responsibilities,omitempty"`
}

type dumpEdge struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Kind  string `yaml:"kind"`
	Label string `yaml:"label"`
}

func newDumpDoc(root string, reg *model.Registry, edges []model.Edge, ranked []graph.Scored) dumpDoc {
	rank := make(map[string]float64, len(ranked))
	for _, s := range ranked {
		rank[s.Key] = s.Rank
	}

	doc := dumpDoc{Root: root}
	for _, m := range reg.Models() {
		t := dumpType{
			Key:              m.Key(),
			Kind:             string(m.Kind),
			File:             m.SourcePath,
			Extends:          m.Extends,
			Implements:       m.Implements,
			Rank:             rank[m.Key()],
			Collaborators:    m.SortedCollaborators(),
			Responsibilities: m.Responsibilities,
		}
		for _, attr := range m.Attributes {
			t.Attributes = append(t.Attributes, attr.String())
		}
		for _, fn := range m.Methods {
			t.Methods = append(t.Methods, fn.String())
		}
		doc.Types = append(doc.Types, t)
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, dumpEdge{From: e.From, To: e.To, Kind: string(e.Kind), Label: e.Label})
	}
	return doc
}
