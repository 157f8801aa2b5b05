// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasbundle capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbundle"
	"github.com/erraggy/oasbundle/internal/cliutil"
)

const serverInstructions = `oasbundle MCP server: bundles multi-file OpenAPI documents into one self-contained document and reports their $ref dependency graph.

Configuration: defaults come from OASBUNDLE_* environment variables set in your MCP client config.

Key settings:
- OASBUNDLE_PROJECT_ROOT: directory that root-prefixed references resolve against
- OASBUNDLE_ROOT_PREFIXES (default: proto/openapi/): comma-separated project-root-relative prefixes
- OASBUNDLE_STRICT (default: false): abort on missing files, missing pointers and cycles
- OASBUNDLE_MAX_REF_DEPTH (default: 100): maximum reference chain length
- OASBUNDLE_MAX_CACHED_DOCUMENTS (default: 100): maximum documents loaded per call
- OASBUNDLE_MAX_FILE_SIZE (default: 10485760): maximum size in bytes of a loaded document
- OASBUNDLE_LOG_LEVEL (default: info): level of the server log written to stderr`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	logger = cliutil.NewLogger(os.Stderr, level, false, false)
	logger.Info("starting MCP server", "agent", oasbundle.UserAgent(), "strict", cfg.Strict)

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasbundle", Version: oasbundle.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "bundle",
		Description: "Bundle a multi-file OpenAPI document into a single self-contained document. External component references are collected into components and rewritten to local #/components/... references; other external references (paths, whole files) are inlined. In lenient mode (default) unresolvable references are kept and reported as diagnostics; strict=true aborts instead. Use output to write to a file instead of returning the document inline. The strict default is configurable via OASBUNDLE_STRICT.",
	}, handleBundle)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refs",
		Description: "Report the $ref dependency graph of a multi-file OpenAPI document without writing anything. Returns one edge per referencing file and target with its status (resolved, missing-file, pointer-not-found, cycle, unsupported-scheme), plus counts grouped by status. Use status to filter edges, e.g. status=missing-file to find broken references.",
	}, handleRefs)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in grouped results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
