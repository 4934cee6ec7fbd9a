package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/phobologic/classdoc/internal/config"
)

const (
	sentinelStart = "<!-- classdoc:start -->"
	sentinelEnd   = "<!-- classdoc:end -->"
)

func newInitCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init [path-to-README.md]",
		Short: "Write a design documentation section into a Markdown file",
		Long: `Write a section listing the generated design artifacts into a Markdown
file. The section is wrapped in sentinel comments so later runs update it in
place without touching surrounding content. Creates the file if it does not
exist.

path-to-README.md defaults to ./README.md.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runInit(args, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")
	return cmd
}

func (a *app) runInit(args []string, dryRun bool) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	section := generateSection(cfg)

	// --dry-run with no path: just print the section itself.
	if dryRun && len(args) == 0 {
		_, _ = fmt.Fprintln(a.stdout, section)
		return nil
	}

	path := "README.md"
	if len(args) > 0 {
		path = args[0]
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "reading %s", path)
	}
	updated := applySection(string(existing), section)

	if dryRun {
		_, _ = fmt.Fprint(a.stdout, updated)
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	_, _ = fmt.Fprintf(a.stderr, "wrote classdoc section to %s\n", path)
	return nil
}

// generateSection returns the sentinel-wrapped section listing the
// artifacts written by generate.
func generateSection(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString("## Design documentation\n\n")
	b.WriteString("Generated by `classdoc generate " + cfg.Root + "` into `" + cfg.Out + "`.\n")
	b.WriteString("Regenerate after changing the Java sources; every file is overwritten.\n\n")

	rows := []struct{ file, what string }{
		{cfg.Outputs.Cards, "CRC cards grouped by package, with implementation and dependency lists"},
		{cfg.Outputs.Gallery, "CRC cards as a browsable HTML page"},
		{cfg.Outputs.Document, "Design document with class tables (needs pandoc)"},
		{cfg.Outputs.Diagrams, "One Mermaid class diagram per package"},
		{cfg.Outputs.Combined, "Whole-project Mermaid class diagram with cross-layer edges"},
		{cfg.Outputs.Focus, "Mermaid diagram of the " + cfg.Focus.Title + " types"},
	}
	b.WriteString("| File | Contents |\n|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| `%s` | %s |\n", r.file, r.what)
	}
	b.WriteString("\nPreview the cards in a terminal with `classdoc preview`; list every flag with `classdoc --help`.")

	return sentinelStart + "\n" + b.String() + "\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}
