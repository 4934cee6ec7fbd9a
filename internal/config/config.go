// Package config loads classdoc settings from defaults, an optional YAML
// file, CLASSDOC_* environment variables and bound command-line flags.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/phobologic/classdoc/internal/diagram"
	"github.com/phobologic/classdoc/internal/graph"
	"github.com/phobologic/classdoc/internal/infer"
	"github.com/phobologic/classdoc/internal/parse"
	"github.com/phobologic/classdoc/internal/render"
	"github.com/phobologic/classdoc/internal/source"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = ".classdoc.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CLASSDOC"
	// DefaultRoot is the conventional Maven source directory.
	DefaultRoot = "src/main/java"
)

// Parser names accepted by the parser key.
const (
	ParserPattern    = "pattern"
	ParserTreeSitter = "treesitter"
)

// RoleDescription pairs a well-known type name with its responsibility
// sentence. Roles are a list rather than a map because viper lowercases
// map keys.
type RoleDescription struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Description string `mapstructure:"description" yaml:"description"`
}

// Outputs are the artifact file names written into Out.
type Outputs struct {
	Cards    string `mapstructure:"cards"`
	Gallery  string `mapstructure:"gallery"`
	Document string `mapstructure:"document"`
	Diagrams string `mapstructure:"diagrams"`
	Combined string `mapstructure:"combined"`
	Focus    string `mapstructure:"focus"`
}

// Config is the resolved classdoc configuration.
type Config struct {
	Root                  string   `mapstructure:"root"`
	Out                   string   `mapstructure:"out"`
	Namespace             string   `mapstructure:"namespace"`
	Parser                string   `mapstructure:"parser"`
	Languages             []string `mapstructure:"languages"`
	Title                 string   `mapstructure:"title"`
	StrictRefs            bool     `mapstructure:"strict_refs"`
	CacheSize             int      `mapstructure:"cache_size"`
	ResponsibilityMarkers []string `mapstructure:"responsibility_markers"`

	Collaborators struct {
		Suffixes []string `mapstructure:"suffixes"`
		Roles    []string `mapstructure:"roles"`
	} `mapstructure:"collaborators"`

	Heuristics struct {
		Entities []string          `mapstructure:"entities"`
		Roles    []RoleDescription `mapstructure:"roles"`
	} `mapstructure:"heuristics"`

	Layers struct {
		Model   string `mapstructure:"model"`
		Service string `mapstructure:"service"`
		Impl    string `mapstructure:"impl"`
	} `mapstructure:"layers"`

	Focus struct {
		Title     string             `mapstructure:"title"`
		Types     []string           `mapstructure:"types"`
		Relations []diagram.Relation `mapstructure:"relations"`
		AutoLimit int                `mapstructure:"auto_limit"`
	} `mapstructure:"focus"`

	Document struct {
		Converter string `mapstructure:"converter"`
	} `mapstructure:"document"`

	Outputs Outputs `mapstructure:"outputs"`
}

// New returns a viper instance carrying every default and the environment
// binding. Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	h := render.DefaultHeuristics()

	v.SetDefault("root", DefaultRoot)
	v.SetDefault("out", ".")
	v.SetDefault("namespace", "")
	v.SetDefault("parser", ParserPattern)
	v.SetDefault("languages", []string{"java"})
	v.SetDefault("title", render.DefaultTitle)
	v.SetDefault("strict_refs", false)
	v.SetDefault("cache_size", source.DefaultSize)
	v.SetDefault("responsibility_markers", parse.DefaultMarkers)
	v.SetDefault("collaborators.suffixes", infer.DefaultSuffixes)
	v.SetDefault("collaborators.roles", infer.DefaultRoles)
	v.SetDefault("heuristics.entities", h.Entities)
	v.SetDefault("layers.model", graph.DefaultLayers.Model)
	v.SetDefault("layers.service", graph.DefaultLayers.Service)
	v.SetDefault("layers.impl", graph.DefaultLayers.Impl)
	v.SetDefault("focus.title", diagram.DefaultFocusTitle)
	v.SetDefault("focus.types", diagram.DefaultFocusTypes)
	v.SetDefault("focus.auto_limit", 12)
	v.SetDefault("document.converter", render.DefaultConverter)
	v.SetDefault("outputs.cards", "CRC_Design_Auto.md")
	v.SetDefault("outputs.gallery", "CRC_Table.html")
	v.SetDefault("outputs.document", "CRC_Design.docx")
	v.SetDefault("outputs.diagrams", "Class_Diagrams.md")
	v.SetDefault("outputs.combined", "Class_Diagram_Combined.md")
	v.SetDefault("outputs.focus", "Class_Diagram_Focus.md")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (or FileName in the working directory when path is empty
// and the file exists) into v and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	switch {
	case path != "":
		if _, err := os.Stat(path); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "config file %s", path),
				"check the --config path",
			)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
	default:
		if _, err := os.Stat(FileName); err == nil {
			v.SetConfigFile(FileName)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "reading %s", FileName)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills the structured keys viper cannot default.
func (c *Config) applyDefaults() {
	if c.Focus.Relations == nil {
		c.Focus.Relations = diagram.DefaultFocusRelations
	}
	if len(c.Heuristics.Roles) == 0 {
		roles := render.DefaultHeuristics().Roles
		names := make([]string, 0, len(roles))
		for name := range roles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.Heuristics.Roles = append(c.Heuristics.Roles, RoleDescription{Name: name, Description: roles[name]})
		}
	}
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	switch c.Parser {
	case ParserPattern, ParserTreeSitter:
	default:
		return errors.WithHintf(
			errors.Newf("unknown parser %q", c.Parser),
			"use %q or %q", ParserPattern, ParserTreeSitter,
		)
	}
	if c.Root == "" {
		return errors.New("root must not be empty")
	}
	return nil
}

// ResolvedNamespace returns the configured namespace, or the one implied
// by a root of the form .../src/main/java/<ns path>.
func (c *Config) ResolvedNamespace() string {
	if c.Namespace != "" {
		return c.Namespace
	}
	return NamespaceFromRoot(c.Root)
}

// NamespaceFromRoot derives a dotted namespace from the directories below
// src/main/java in root. It returns "" when root has no such segment.
func NamespaceFromRoot(root string) string {
	slashed := filepath.ToSlash(filepath.Clean(root))
	const marker = "src/main/java"
	i := strings.LastIndex(slashed, marker)
	if i < 0 {
		return ""
	}
	rest := strings.Trim(slashed[i+len(marker):], "/")
	if rest == "" {
		return ""
	}
	return strings.ReplaceAll(rest, "/", ".")
}

// ParseOptions returns the scanner options.
func (c *Config) ParseOptions() parse.Options {
	return parse.Options{Namespace: c.ResolvedNamespace(), Markers: c.ResponsibilityMarkers}
}

// Heuristic returns the responsibility heuristic.
func (c *Config) Heuristic() render.Heuristics {
	h := render.Heuristics{
		Entities: c.Heuristics.Entities,
		Roles:    make(map[string]string, len(c.Heuristics.Roles)),
	}
	for _, r := range c.Heuristics.Roles {
		h.Roles[r.Name] = r.Description
	}
	return h
}

// GraphLayers returns the package layers used by cross-layer edges.
func (c *Config) GraphLayers() graph.Layers {
	return graph.Layers{Model: c.Layers.Model, Service: c.Layers.Service, Impl: c.Layers.Impl}
}
