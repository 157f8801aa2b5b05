package bundler

import (
	"errors"
	"io/fs"
	"os"

	"github.com/erraggy/oasbundle/node"
	"github.com/erraggy/oasbundle/oaserrors"
)

const (
	// MaxRefDepth is the maximum length of a chain of nested references.
	// It backstops cycle detection against pathological but acyclic inputs.
	MaxRefDepth = 100

	// MaxCachedDocuments is the maximum number of documents loaded per run.
	MaxCachedDocuments = 100

	// MaxFileSize is the maximum size in bytes of any loaded document.
	MaxFileSize = 10 * 1024 * 1024 // 10MB
)

type cachedDocument struct {
	root   *node.Node
	format node.Format
}

// DocumentCache loads and parses each absolute path at most once.
// It is not safe for concurrent use.
type DocumentCache struct {
	docs         map[string]cachedDocument
	maxDocuments int
	maxFileSize  int64
	logger       Logger
}

// NewDocumentCache creates a cache. Zero limits mean the package defaults.
func NewDocumentCache(maxDocuments int, maxFileSize int64, logger Logger) *DocumentCache {
	if maxDocuments <= 0 {
		maxDocuments = MaxCachedDocuments
	}
	if maxFileSize <= 0 {
		maxFileSize = MaxFileSize
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &DocumentCache{
		docs:         make(map[string]cachedDocument),
		maxDocuments: maxDocuments,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

// Load returns the parsed document at path, reading it on first use.
//
// A missing file yields a *oaserrors.ReferenceError with IsMissingFile set,
// malformed content a *oaserrors.ParseError and an exceeded limit a
// *oaserrors.ResourceLimitError.
func (c *DocumentCache) Load(path string) (*node.Node, error) {
	if doc, ok := c.docs[path]; ok {
		return doc.root, nil
	}
	if len(c.docs) >= c.maxDocuments {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        int64(c.maxDocuments),
			Actual:       int64(len(c.docs) + 1),
			Message:      "too many documents referenced",
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &oaserrors.ReferenceError{
				Ref:           path,
				RefType:       "file",
				IsMissingFile: true,
				Cause:         err,
			}
		}
		return nil, &oaserrors.ReferenceError{Ref: path, RefType: "file", Message: "cannot stat file", Cause: err}
	}
	if info.IsDir() {
		return nil, &oaserrors.ReferenceError{Ref: path, RefType: "file", Message: "reference names a directory"}
	}
	if info.Size() > c.maxFileSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        c.maxFileSize,
			Actual:       info.Size(),
			Message:      path,
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: path, RefType: "file", Message: "cannot read file", Cause: err}
	}
	root, err := node.Decode(data)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "invalid YAML or JSON", Cause: err}
	}

	format := node.DetectFormat(path, data)
	c.docs[path] = cachedDocument{root: root, format: format}
	c.logger.Debug("loaded document", "path", path, "format", format.String(), "bytes", len(data))
	return root, nil
}

// Format returns the detected format of a loaded document.
func (c *DocumentCache) Format(path string) node.Format {
	return c.docs[path].format
}

// Len returns the number of documents loaded.
func (c *DocumentCache) Len() int {
	return len(c.docs)
}

// Paths returns the loaded document paths in no particular order.
func (c *DocumentCache) Paths() []string {
	paths := make([]string, 0, len(c.docs))
	for p := range c.docs {
		paths = append(paths, p)
	}
	return paths
}
