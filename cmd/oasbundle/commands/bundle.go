package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/oasbundle/bundler"
	"github.com/erraggy/oasbundle/internal/cliutil"
	"github.com/erraggy/oasbundle/node"
)

// BundleFlags contains flags for the bundle command
type BundleFlags struct {
	resolveFlags
	Strict  bool
	Output  string
	Format  string
	Quiet   bool
	Verbose bool
}

// SetupBundleFlags creates and configures a FlagSet for the bundle command.
// Returns the FlagSet and a BundleFlags struct with bound flag variables.
func SetupBundleFlags() (*flag.FlagSet, *BundleFlags) {
	fs := flag.NewFlagSet("bundle", flag.ContinueOnError)
	flags := &BundleFlags{}

	fs.BoolVar(&flags.Strict, "strict", false, "abort on missing files, missing pointers and reference cycles")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: yaml or json (default: from output extension, then input)")
	fs.StringVar(&flags.ProjectRoot, "project-root", "", "directory that root-prefixed references resolve against (default: working directory)")
	fs.Var(&flags.RootPrefixes, "root-prefix", "project-root-relative reference prefix, repeatable (default: proto/openapi/)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no diagnostics or summary on stderr")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no diagnostics or summary on stderr")
	fs.BoolVar(&flags.Verbose, "v", false, "log resolution steps to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log resolution steps to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasbundle bundle [flags] <input> [output] [flags]\n\n")
		cliutil.Writef(fs.Output(), "Bundle a multi-file OpenAPI document into one self-contained document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasbundle bundle openapi.yaml bundled.yaml\n")
		cliutil.Writef(fs.Output(), "  oasbundle bundle --strict -o bundled.json openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasbundle bundle openapi.yaml bundled.yaml --strict\n")
		cliutil.Writef(fs.Output(), "  oasbundle bundle --project-root ../.. proto/openapi/api.yaml > api.yaml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Without an output path the bundled document is written to stdout\n")
		cliutil.Writef(fs.Output(), "  - In lenient mode (default) unresolvable references are kept and reported on stderr\n")
		cliutil.Writef(fs.Output(), "  - Defaults can be set with OASBUNDLE_* environment variables; flags take precedence\n")
		cliutil.Writef(fs.Output(), "  - Output file is written with restrictive permissions (0600) for security\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Bundle written\n")
		cliutil.Writef(fs.Output(), "  1    Strict mode hit a reference problem, or a document could not be read\n")
	}

	return fs, flags
}

// HandleBundle executes the bundle command
func HandleBundle(args []string) error {
	return runBundle(args, os.Stdout, os.Stderr)
}

func runBundle(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupBundleFlags()
	fs.SetOutput(stderr)

	paths, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if len(paths) < 1 || len(paths) > 2 {
		fs.Usage()
		return fmt.Errorf("bundle command requires an input path and at most one output path")
	}
	input := paths[0]
	output := flags.Output
	if len(paths) == 2 {
		if output != "" && output != paths[1] {
			return fmt.Errorf("output given twice: %s and %s", output, paths[1])
		}
		output = paths[1]
	}

	format, err := parseDocumentFormat(flags.Format)
	if err != nil {
		return err
	}

	b, err := newBundler(flags.resolveFlags)
	if err != nil {
		return err
	}
	if flags.Strict {
		b.Mode = bundler.ModeStrict
	}
	b.Format = format
	if flags.Verbose {
		b.Logger = bundler.NewSlogAdapter(cliutil.NewLogger(stderr, slog.LevelDebug, true, flags.Quiet))
	}

	result, err := b.Bundle(input, output)
	if err != nil {
		return fmt.Errorf("bundling %s: %w", input, err)
	}

	if !flags.Quiet {
		writeDiagnostics(stderr, result.Diagnostics)
	}

	if result.WrittenTo == "" {
		data, err := result.Marshal(node.FormatUnknown)
		if err != nil {
			return fmt.Errorf("marshaling bundled document: %w", err)
		}
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing bundled document to stdout: %w", err)
		}
		return nil
	}

	if !flags.Quiet {
		cliutil.Writef(stderr, "%s\n", result.Summary())
		cliutil.Writef(stderr, "Output: %s\n", result.WrittenTo)
	}
	return nil
}
