package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbundle/bundler"
	"github.com/erraggy/oasbundle/node"
)

type bundleInput struct {
	File        string `json:"file"                   jsonschema:"Path to the entry OpenAPI document on disk"`
	Output      string `json:"output,omitempty"       jsonschema:"File path to write the bundled document. If omitted the document is returned inline."`
	Strict      bool   `json:"strict,omitempty"       jsonschema:"Abort on missing files, missing pointers and reference cycles instead of reporting them"`
	Format      string `json:"format,omitempty"       jsonschema:"Output format: yaml or json. Defaults to the output file extension, then the entry document format."`
	ProjectRoot string `json:"project_root,omitempty" jsonschema:"Directory that root-prefixed references (proto/openapi/...) resolve against"`
}

type bundleDiagnostic struct {
	Kind     string `json:"kind"`
	Ref      string `json:"ref"`
	File     string `json:"file"`
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
}

type bundleOutput struct {
	Entry           string             `json:"entry"`
	FileCount       int                `json:"file_count"`
	ComponentCount  int                `json:"component_count"`
	DiagnosticCount int                `json:"diagnostic_count"`
	Diagnostics     []bundleDiagnostic `json:"diagnostics,omitempty"`
	Stats           bundler.Stats      `json:"stats"`
	WrittenTo       string             `json:"written_to,omitempty"`
	Document        string             `json:"document,omitempty"`
	Summary         string             `json:"summary"`
}

func handleBundle(_ context.Context, _ *mcp.CallToolRequest, input bundleInput) (*mcp.CallToolResult, bundleOutput, error) {
	if input.File == "" {
		return errResult(errors.New("file is required")), bundleOutput{}, nil
	}

	b := newBundler(input.ProjectRoot, input.Strict)
	if input.Format != "" {
		f, err := node.ParseFormat(input.Format)
		if err != nil {
			return errResult(fmt.Errorf("invalid format: %w", err)), bundleOutput{}, nil
		}
		b.Format = f
	}

	result, err := b.Bundle(input.File, input.Output)
	if err != nil {
		return errResult(err), bundleOutput{}, nil
	}

	base := filepath.Dir(result.EntryFile)
	output := bundleOutput{
		Entry:           filepath.Base(result.EntryFile),
		FileCount:       result.Stats.FilesLoaded,
		ComponentCount:  result.Stats.ComponentsMerged,
		DiagnosticCount: len(result.Diagnostics),
		Stats:           result.Stats,
	}
	output.Diagnostics = makeSlice[bundleDiagnostic](len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		output.Diagnostics = append(output.Diagnostics, bundleDiagnostic{
			Kind:     string(d.Kind),
			Ref:      d.Ref,
			File:     relTo(base, d.File),
			Location: d.Location,
			Message:  sanitizeError(errors.New(d.Message)),
		})
	}
	output.Summary = buildBundleSummary(output)

	if result.WrittenTo != "" {
		output.WrittenTo = result.WrittenTo
		return nil, output, nil
	}
	data, err := result.Marshal(node.FormatUnknown)
	if err != nil {
		return errResult(err), bundleOutput{}, nil
	}
	output.Document = string(data)
	return nil, output, nil
}

func buildBundleSummary(output bundleOutput) string {
	summary := "Bundled " + formatCount(output.FileCount, "file") + " into " + output.Entry
	summary += " with " + formatCount(output.ComponentCount, "collected component")
	summary += ", " + formatCount(output.Stats.RefsRewritten, "rewritten reference")
	summary += " and " + formatCount(output.Stats.RefsSpliced, "inlined reference") + "."
	if output.DiagnosticCount > 0 {
		summary += " " + formatCount(output.DiagnosticCount, "diagnostic") + "."
	}
	return summary
}

// relTo returns path relative to base when it lies below base.
func relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || !filepath.IsLocal(rel) {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
