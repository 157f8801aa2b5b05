// Package commands provides CLI command handlers for oasbundle.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbundle/bundler"
	"github.com/erraggy/oasbundle/internal/cliutil"
	"github.com/erraggy/oasbundle/internal/config"
	"github.com/erraggy/oasbundle/node"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
// Returns an error if marshaling fails.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// prefixList is a repeatable string flag.
type prefixList []string

func (p *prefixList) String() string {
	return strings.Join(*p, ",")
}

func (p *prefixList) Set(value string) error {
	if value == "" {
		return fmt.Errorf("root prefix cannot be empty")
	}
	*p = append(*p, value)
	return nil
}

// resolveFlags are the reference resolution flags shared by bundle and refs.
type resolveFlags struct {
	ProjectRoot  string
	RootPrefixes prefixList
}

// newBundler builds a bundler from OASBUNDLE_* settings overridden by the
// resolution flags.
func newBundler(flags resolveFlags) (*bundler.Bundler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	b := bundler.New()
	cfg.Apply(b)
	if flags.ProjectRoot != "" {
		b.ProjectRoot = flags.ProjectRoot
	}
	if len(flags.RootPrefixes) > 0 {
		b.RootPrefixes = append([]string{}, flags.RootPrefixes...)
	}
	return b, nil
}

// parseDocumentFormat maps the --format flag of bundle onto a node.Format.
// An empty value leaves the choice to the bundler.
func parseDocumentFormat(s string) (node.Format, error) {
	if s == "" {
		return node.FormatUnknown, nil
	}
	return node.ParseFormat(s)
}

// writeDiagnostics prints one line per diagnostic.
func writeDiagnostics(w io.Writer, diags []bundler.Diagnostic) {
	for _, d := range diags {
		cliutil.Writef(w, "%s\n", d.Message)
	}
}

// parseArgs parses args with fs and returns the positional arguments.
// Unlike fs.Parse it keeps reading flags after the first positional
// argument, so "bundle in.yaml out.yaml --strict" works. Everything after
// a "--" terminator is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
