package bundler

import (
	"path/filepath"
	"strings"

	"github.com/erraggy/oasbundle/internal/pathutil"
	"github.com/erraggy/oasbundle/node"
)

// DefaultRootPrefixes are the $ref prefixes resolved against the project
// root instead of the referencing file's directory.
var DefaultRootPrefixes = []string{"proto/openapi/"}

// Reference is a parsed $ref value.
type Reference struct {
	// Raw is the $ref string as written.
	Raw string
	// File is the absolute path of the target document, or "" for a local
	// reference.
	File string
	// Pointer holds the unescaped JSON Pointer segments. nil means the whole
	// document.
	Pointer []string
	// Unsupported is set for URL references, which are never fetched.
	Unsupported bool
}

// IsLocal reports whether r points into the document that contains it.
func (r Reference) IsLocal() bool {
	return r.File == "" && !r.Unsupported
}

// In returns a copy of a local reference anchored to file. Non-local
// references are returned unchanged.
func (r Reference) In(file string) Reference {
	if !r.IsLocal() {
		return r
	}
	r.File = file
	return r
}

// ID returns the identifier used for cycle detection and memoization:
// the absolute file, "#", and the escaped pointer.
func (r Reference) ID() string {
	if r.Unsupported {
		return r.Raw
	}
	return r.File + "#" + node.FormatPointer(r.Pointer)
}

// Name returns the last pointer segment, or "" for a whole-document reference.
func (r Reference) Name() string {
	if len(r.Pointer) == 0 {
		return ""
	}
	return r.Pointer[len(r.Pointer)-1]
}

// String returns the raw reference.
func (r Reference) String() string {
	return r.Raw
}

// PathResolver turns $ref strings into References.
type PathResolver struct {
	// ProjectRoot anchors references that start with one of RootPrefixes.
	// Empty means the working directory.
	ProjectRoot string
	// RootPrefixes lists project-root-relative prefixes.
	RootPrefixes []string
}

// Resolve parses ref as found in a document located in currentDir.
func (p *PathResolver) Resolve(ref, currentDir string) Reference {
	r := Reference{Raw: ref}
	if pathutil.HasURLScheme(ref) {
		r.Unsupported = true
		return r
	}

	filePart, fragment, _ := strings.Cut(ref, "#")
	if fragment != "" && fragment != "/" {
		r.Pointer = node.ParsePointer(fragment)
	}
	if filePart == "" {
		return r
	}

	var target string
	switch {
	case filepath.IsAbs(filePart):
		target = filePart
	case strings.HasPrefix(filePart, "./"), strings.HasPrefix(filePart, "../"):
		target = filepath.Join(currentDir, filePart)
	case p.hasRootPrefix(filePart):
		target = filepath.Join(p.ProjectRoot, filePart)
	default:
		target = filepath.Join(currentDir, filePart)
	}
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	r.File = filepath.Clean(target)
	return r
}

func (p *PathResolver) hasRootPrefix(path string) bool {
	for _, prefix := range p.RootPrefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// lookupFragment walks pointer inside doc. When the literal pointer does not
// exist, the last segment is retried as components/schemas/<name>.
func lookupFragment(doc *node.Node, pointer []string) (*node.Node, bool) {
	if pointer == nil {
		return doc, doc != nil
	}
	if n, ok := node.Lookup(doc, pointer); ok {
		return n, true
	}
	if len(pointer) == 0 {
		return nil, false
	}
	return node.Lookup(doc, []string{"components", pathutil.CategorySchemas, pointer[len(pointer)-1]})
}
