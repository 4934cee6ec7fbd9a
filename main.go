// classdoc generates CRC cards, an HTML card gallery, a DOCX design document
// and Mermaid class diagrams from Java sources.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phobologic/classdoc/internal/config"
	"github.com/phobologic/classdoc/internal/infer"
	"github.com/phobologic/classdoc/internal/lang"
	"github.com/phobologic/classdoc/internal/logging"
	"github.com/phobologic/classdoc/internal/model"
	"github.com/phobologic/classdoc/internal/parse"
	"github.com/phobologic/classdoc/internal/registry"
	"github.com/phobologic/classdoc/internal/source"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	verbose    bool
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "classdoc",
		Short:         "Generate CRC cards and class diagrams from Java sources",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("classdoc {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ./"+config.FileName+")")
	pf.BoolVar(&a.verbose, "verbose", false, "log debug output")
	pf.String("parser", config.ParserPattern, "source scanner: pattern or treesitter")
	pf.String("namespace", "", "project namespace used to filter imports (derived from root when empty)")
	pf.StringSlice("langs", []string{"java"}, "languages to scan")
	pf.Bool("strict-refs", false, "ignore comments and string literals when matching type references")
	for key, name := range map[string]string{
		"parser":      "parser",
		"namespace":   "namespace",
		"languages":   "langs",
		"strict_refs": "strict-refs",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(name))
	}

	root.AddCommand(
		newGenerateCmd(a),
		newDumpCmd(a),
		newPreviewCmd(a),
		newInitCmd(a),
	)
	return root
}

// load resolves the configuration. A positional argument replaces the
// configured root.
func (a *app) load(args []string) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return nil, nil, err
	}
	if len(args) > 0 {
		cfg.Root = args[0]
	}
	for _, name := range cfg.Languages {
		if _, ok := lang.Languages[name]; !ok {
			return nil, nil, errors.WithHint(
				errors.Newf("unsupported language %q", name),
				"supported: java",
			)
		}
	}
	return cfg, logging.New(a.stderr, a.verbose), nil
}

func newScanner(cfg *config.Config) parse.Scanner {
	if cfg.Parser == config.ParserTreeSitter {
		return parse.NewTreeSitterScanner(cfg.ParseOptions())
	}
	return parse.NewPatternScanner(cfg.ParseOptions())
}

// scan builds the registry under cfg.Root and infers collaborators. The
// same source cache serves the scan and the cross-reference pass.
func scan(cfg *config.Config, logger *log.Logger) (*model.Registry, registry.Stats, error) {
	cache, err := source.NewCache(cfg.CacheSize)
	if err != nil {
		return nil, registry.Stats{}, err
	}

	b := &registry.Builder{
		Scanner:   newScanner(cfg),
		Cache:     cache,
		Logger:    logger,
		Languages: cfg.Languages,

		DeriveNamespace: cfg.ResolvedNamespace() == "",
	}
	reg, stats, err := b.Scan(cfg.Root)
	if err != nil {
		return nil, stats, err
	}

	infer.Run(reg, infer.Options{
		Root:     cfg.Root,
		Reader:   cache,
		Suffixes: cfg.Collaborators.Suffixes,
		Roles:    cfg.Collaborators.Roles,
		Strict:   cfg.StrictRefs,
		Logger:   logger,
	})
	logger.Debug("collaborators inferred", "types", reg.Len(), "disk_reads", cache.DiskReads())
	return reg, stats, nil
}
