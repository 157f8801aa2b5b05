package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasbundle/bundler"
	"github.com/erraggy/oasbundle/internal/cliutil"
)

// RefsFlags contains flags for the refs command
type RefsFlags struct {
	resolveFlags
	Format string
	Broken bool
}

// RefsReport is the structured output of the refs command.
type RefsReport struct {
	Entry      string          `json:"entry" yaml:"entry"`
	Files      []string        `json:"files" yaml:"files"`
	References []RefsReportRow `json:"references" yaml:"references"`
}

// RefsReportRow is one dependency edge, with paths relative to the entry
// document's directory.
type RefsReportRow struct {
	From   string `json:"from" yaml:"from"`
	Ref    string `json:"ref" yaml:"ref"`
	Target string `json:"target" yaml:"target"`
	Status string `json:"status" yaml:"status"`
}

// SetupRefsFlags creates and configures a FlagSet for the refs command.
// Returns the FlagSet and a RefsFlags struct with bound flag variables.
func SetupRefsFlags() (*flag.FlagSet, *RefsFlags) {
	fs := flag.NewFlagSet("refs", flag.ContinueOnError)
	flags := &RefsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Broken, "broken", false, "only list references that did not resolve; exit 1 if any exist")
	fs.StringVar(&flags.ProjectRoot, "project-root", "", "directory that root-prefixed references resolve against (default: working directory)")
	fs.Var(&flags.RootPrefixes, "root-prefix", "project-root-relative reference prefix, repeatable (default: proto/openapi/)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasbundle refs [flags] <input>\n\n")
		cliutil.Writef(fs.Output(), "List the files and $ref edges reachable from an OpenAPI document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nStatuses:\n")
		cliutil.Writef(fs.Output(), "  resolved            The target was found\n")
		cliutil.Writef(fs.Output(), "  missing-file        The referenced file does not exist\n")
		cliutil.Writef(fs.Output(), "  pointer-not-found   The file exists but the pointer does not\n")
		cliutil.Writef(fs.Output(), "  cycle               The reference re-enters itself\n")
		cliutil.Writef(fs.Output(), "  unsupported-scheme  URL references are not followed\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasbundle refs openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasbundle refs --broken openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasbundle refs --format json openapi.yaml | jq '.files'\n")
	}

	return fs, flags
}

// HandleRefs executes the refs command
func HandleRefs(args []string) error {
	return runRefs(args, os.Stdout, os.Stderr)
}

func runRefs(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupRefsFlags()
	fs.SetOutput(stderr)

	paths, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if len(paths) != 1 {
		fs.Usage()
		return fmt.Errorf("refs command requires exactly one input path")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	b, err := newBundler(flags.resolveFlags)
	if err != nil {
		return err
	}
	// Every edge is reported, so reference problems never abort the walk.
	b.Mode = bundler.ModeLenient

	result, err := b.Bundle(paths[0], "")
	if err != nil {
		return fmt.Errorf("reading references of %s: %w", paths[0], err)
	}

	report := buildRefsReport(result, flags.Broken)
	if flags.Format == FormatText {
		writeRefsText(stdout, report)
	} else if err := OutputStructured(stdout, report, flags.Format); err != nil {
		return err
	}

	if flags.Broken && len(report.References) > 0 {
		return fmt.Errorf("%d unresolved reference(s)", len(report.References))
	}
	return nil
}

func buildRefsReport(result *bundler.Result, brokenOnly bool) RefsReport {
	base := filepath.Dir(result.EntryFile)
	report := RefsReport{
		Entry:      filepath.Base(result.EntryFile),
		Files:      make([]string, 0, len(result.Files)),
		References: make([]RefsReportRow, 0, len(result.Dependencies)),
	}
	for _, f := range result.Files {
		report.Files = append(report.Files, cliutil.DisplayPath(base, f))
	}
	for _, d := range result.Dependencies {
		if brokenOnly && d.Status == bundler.StatusResolved {
			continue
		}
		target := d.Target
		if file, pointer, ok := strings.Cut(target, "#"); ok && filepath.IsAbs(file) {
			target = cliutil.DisplayPath(base, file) + "#" + pointer
		}
		report.References = append(report.References, RefsReportRow{
			From:   cliutil.DisplayPath(base, d.From),
			Ref:    d.Ref,
			Target: target,
			Status: d.Status,
		})
	}
	return report
}

func writeRefsText(w io.Writer, report RefsReport) {
	cliutil.Writef(w, "Entry: %s\n", report.Entry)
	cliutil.Writef(w, "Files (%d):\n", len(report.Files))
	for _, f := range report.Files {
		cliutil.Writef(w, "  %s\n", f)
	}
	cliutil.Writef(w, "References (%d):\n", len(report.References))
	for _, r := range report.References {
		cliutil.Writef(w, "  %s -> %s [%s]\n", r.From, r.Ref, r.Status)
	}
}
