package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbundle/bundler"
)

type refsInput struct {
	File        string `json:"file"                   jsonschema:"Path to the entry OpenAPI document on disk"`
	Status      string `json:"status,omitempty"       jsonschema:"Only return edges with this status: resolved or missing-file or pointer-not-found or cycle or unsupported-scheme"`
	ProjectRoot string `json:"project_root,omitempty" jsonschema:"Directory that root-prefixed references (proto/openapi/...) resolve against"`
}

type refEdge struct {
	From   string `json:"from"`
	Ref    string `json:"ref"`
	Target string `json:"target"`
	Status string `json:"status"`
}

type refsOutput struct {
	Entry     string       `json:"entry"`
	Files     []string     `json:"files"`
	EdgeCount int          `json:"edge_count"`
	ByStatus  []groupCount `json:"by_status,omitempty"`
	Edges     []refEdge    `json:"edges,omitempty"`
	Summary   string       `json:"summary"`
}

var validRefStatuses = []string{
	bundler.StatusResolved,
	string(bundler.KindMissingFile),
	string(bundler.KindPointerNotFound),
	string(bundler.KindCycle),
	string(bundler.KindUnsupportedScheme),
}

func handleRefs(_ context.Context, _ *mcp.CallToolRequest, input refsInput) (*mcp.CallToolResult, refsOutput, error) {
	if input.File == "" {
		return errResult(errors.New("file is required")), refsOutput{}, nil
	}
	if err := validateStatus(input.Status); err != nil {
		return errResult(err), refsOutput{}, nil
	}

	// The dependency report never aborts on reference problems.
	b := newBundler(input.ProjectRoot, false)
	b.Mode = bundler.ModeLenient
	result, err := b.Bundle(input.File, "")
	if err != nil {
		return errResult(err), refsOutput{}, nil
	}

	base := filepath.Dir(result.EntryFile)
	output := refsOutput{
		Entry:     filepath.Base(result.EntryFile),
		EdgeCount: len(result.Dependencies),
		ByStatus: groupAndSort(result.Dependencies, func(d bundler.Dependency) string {
			return d.Status
		}),
	}
	for _, f := range result.Files {
		output.Files = append(output.Files, relTo(base, f))
	}
	for _, d := range result.Dependencies {
		if input.Status != "" && d.Status != input.Status {
			continue
		}
		output.Edges = append(output.Edges, refEdge{
			From:   relTo(base, d.From),
			Ref:    d.Ref,
			Target: relativeTarget(base, d.Target),
			Status: d.Status,
		})
	}
	output.Summary = buildRefsSummary(output)
	return nil, output, nil
}

func validateStatus(status string) error {
	if status == "" {
		return nil
	}
	for _, s := range validRefStatuses {
		if s == status {
			return nil
		}
	}
	return fmt.Errorf("invalid status %q; valid values: %s", status, strings.Join(validRefStatuses, ", "))
}

// relativeTarget shortens the file part of a reference identifier.
func relativeTarget(base, target string) string {
	file, pointer, ok := strings.Cut(target, "#")
	if !ok || !filepath.IsAbs(file) {
		return target
	}
	return relTo(base, file) + "#" + pointer
}

func buildRefsSummary(output refsOutput) string {
	summary := output.Entry + " references " + formatCount(len(output.Files)-1, "other file")
	summary += " through " + formatCount(output.EdgeCount, "edge") + "."
	for _, g := range output.ByStatus {
		if g.Key != bundler.StatusResolved {
			summary += " " + formatCount(g.Count, g.Key+" edge") + "."
		}
	}
	return summary
}
