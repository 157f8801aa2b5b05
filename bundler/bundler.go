package bundler

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/erraggy/oasbundle/internal/fileutil"
	"github.com/erraggy/oasbundle/internal/pathutil"
	"github.com/erraggy/oasbundle/node"
	"github.com/erraggy/oasbundle/oaserrors"
)

// Mode selects how reference problems are handled.
type Mode int

const (
	// ModeLenient records diagnostics, leaves the offending $ref as written
	// and keeps going.
	ModeLenient Mode = iota
	// ModeStrict aborts at the first missing file, missing pointer or cycle.
	ModeStrict
)

// String returns "lenient" or "strict".
func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "lenient"
}

// ParseMode parses "strict" or "lenient".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return ModeLenient, nil
	case "strict":
		return ModeStrict, nil
	}
	return ModeLenient, &oaserrors.ConfigError{Option: "mode", Value: s, Message: "expected strict or lenient"}
}

// Bundler inlines every external $ref of a multi-file OpenAPI document.
// A Bundler is not safe for concurrent use; create one per goroutine.
type Bundler struct {
	// Mode controls the handling of reference problems. Default: ModeLenient.
	Mode Mode
	// ProjectRoot anchors references starting with one of RootPrefixes.
	// Empty means the working directory.
	ProjectRoot string
	// RootPrefixes are the project-root-relative reference prefixes.
	// nil means DefaultRootPrefixes.
	RootPrefixes []string
	// Format forces the output format. FormatUnknown picks it from the
	// output path extension, then from the entry document.
	Format node.Format
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger

	// Resource limits (0 means use default)

	// MaxRefDepth is the maximum length of a reference chain.
	// Default: 100
	MaxRefDepth int
	// MaxCachedDocuments is the maximum number of documents loaded per run.
	// Default: 100
	MaxCachedDocuments int
	// MaxFileSize is the maximum size in bytes of a loaded document.
	// Default: 10MB
	MaxFileSize int64
}

// New creates a new Bundler instance with default settings.
func New() *Bundler {
	return &Bundler{
		Mode:         ModeLenient,
		RootPrefixes: slices.Clone(DefaultRootPrefixes),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (b *Bundler) log() Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return NopLogger{}
}

// Result is the outcome of a bundle run.
type Result struct {
	// Document is the bundled, self-contained document.
	Document *node.Node
	// Diagnostics lists reference problems in the order they were found.
	Diagnostics []Diagnostic
	// RunID identifies this run in logs.
	RunID string
	// EntryFile is the absolute path of the entry document.
	EntryFile string
	// WrittenTo is the absolute output path, or "" when nothing was written.
	WrittenTo string
	// SourceFormat is the format of the entry document.
	SourceFormat node.Format
	// OutputFormat is the format used for WrittenTo and by Marshal.
	OutputFormat node.Format
	// Files lists every document loaded, sorted.
	Files []string
	// Dependencies is the reference graph discovered while bundling.
	Dependencies []Dependency
	Stats        Stats
}

// Marshal serializes the bundled document. FormatUnknown means the
// result's OutputFormat.
func (r *Result) Marshal(f node.Format) ([]byte, error) {
	if f == node.FormatUnknown {
		f = r.OutputFormat
	}
	return node.Marshal(r.Document, f)
}

// HasDiagnostics reports whether any reference problem was recorded.
func (r *Result) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

// Summary returns a one-line description of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf("bundled %d file(s): %d component(s) merged, %d reference(s) rewritten, %d spliced, %d diagnostic(s)",
		r.Stats.FilesLoaded, r.Stats.ComponentsMerged, r.Stats.RefsRewritten, r.Stats.RefsSpliced, len(r.Diagnostics))
}

// Bundle bundles entryFile and, when outputFile is non-empty, writes the
// result there with owner-only permissions.
//
// In strict mode the first fatal diagnostic is returned as a
// *oaserrors.ReferenceError and nothing is written.
func (b *Bundler) Bundle(entryFile, outputFile string) (*Result, error) {
	if entryFile == "" {
		return nil, &oaserrors.ConfigError{Option: "entry", Message: "no entry document specified"}
	}
	entry, err := filepath.Abs(entryFile)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "entry", Value: entryFile, Cause: err}
	}
	var output string
	if outputFile != "" {
		output, err = pathutil.SanitizeOutputPath(outputFile, entry)
		if err != nil {
			return nil, &oaserrors.ConfigError{Option: "output", Value: outputFile, Cause: err}
		}
	}

	runID := uuid.NewString()
	log := b.log().With("run_id", runID)
	log.Debug("bundling", "entry", entry, "mode", b.Mode.String())

	prefixes := b.RootPrefixes
	if prefixes == nil {
		prefixes = DefaultRootPrefixes
	}
	projectRoot := b.ProjectRoot
	if projectRoot != "" {
		if abs, err := filepath.Abs(projectRoot); err == nil {
			projectRoot = abs
		}
	}
	paths := &PathResolver{ProjectRoot: projectRoot, RootPrefixes: prefixes}
	cache := NewDocumentCache(b.MaxCachedDocuments, b.MaxFileSize, log)
	s := newSession(entry, b.Mode == ModeStrict, b.MaxRefDepth, paths, cache, log)

	root, err := cache.Load(entry)
	if err != nil {
		return nil, fmt.Errorf("bundler: loading entry document: %w", err)
	}
	if !root.IsMapping() {
		return nil, &oaserrors.ParseError{Path: entry, Message: "entry document must be a mapping"}
	}

	if _, err := (&collector{s: s}).collect(root); err != nil {
		return nil, fmt.Errorf("bundler: %w", err)
	}
	merged := s.merge(root)
	doc, err := (&resolver{s: s}).resolve(merged)
	if err != nil {
		return nil, fmt.Errorf("bundler: %w", err)
	}

	s.stats.FilesLoaded = cache.Len()
	files := cache.Paths()
	slices.Sort(files)
	result := &Result{
		Document:     doc,
		Diagnostics:  s.diags.list(),
		RunID:        runID,
		EntryFile:    entry,
		SourceFormat: cache.Format(entry),
		OutputFormat: b.outputFormat(output, cache.Format(entry)),
		Files:        files,
		Dependencies: s.deps.list(),
		Stats:        s.stats,
	}

	if output != "" {
		if err := b.WriteResult(result, output); err != nil {
			return result, err
		}
	}
	log.Info("bundle complete", "entry", entry, "files", result.Stats.FilesLoaded,
		"components", result.Stats.ComponentsMerged, "diagnostics", len(result.Diagnostics))
	return result, nil
}

func (b *Bundler) outputFormat(output string, source node.Format) node.Format {
	if b.Format != node.FormatUnknown {
		return b.Format
	}
	if f := node.FormatFromPath(output); f != node.FormatUnknown {
		return f
	}
	if source != node.FormatUnknown {
		return source
	}
	return node.FormatYAML
}

// WriteResult writes the bundled document to outputPath in the result's
// OutputFormat with owner-only permissions.
func (b *Bundler) WriteResult(result *Result, outputPath string) error {
	if result == nil || result.Document == nil {
		return errors.New("bundler: nothing to write")
	}
	data, err := result.Marshal(node.FormatUnknown)
	if err != nil {
		return fmt.Errorf("bundler: failed to marshal bundled document: %w", err)
	}
	if err := fileutil.WriteFile(outputPath, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("bundler: %w", err)
	}
	result.WrittenTo = outputPath
	return nil
}
