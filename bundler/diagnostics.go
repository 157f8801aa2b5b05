package bundler

import (
	"fmt"

	"github.com/erraggy/oasbundle/oaserrors"
)

// DiagnosticKind classifies a reference problem found while bundling.
type DiagnosticKind string

const (
	// KindMissingFile means a $ref names a file that does not exist.
	KindMissingFile DiagnosticKind = "missing-file"
	// KindPointerNotFound means the target file exists but the pointer does not.
	KindPointerNotFound DiagnosticKind = "pointer-not-found"
	// KindCycle means a reference re-enters itself along one resolution path.
	KindCycle DiagnosticKind = "cycle"
	// KindUnsupportedScheme means a URL reference was left unresolved.
	KindUnsupportedScheme DiagnosticKind = "unsupported-scheme"
)

// Diagnostic records one reference problem. In lenient mode diagnostics are
// collected in the Result; in strict mode the first fatal one aborts the run.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`
	// Ref is the $ref value as written.
	Ref string `json:"ref"`
	// ID is the reference identifier (absolute file + "#" + pointer).
	ID string `json:"id"`
	// File is the document that contains the $ref.
	File string `json:"file"`
	// Location is the JSON Pointer of the $ref mapping inside File.
	Location string `json:"location,omitempty"`
	// Message is the human-readable line printed by the CLI.
	Message string `json:"message"`
}

// Fatal reports whether the diagnostic aborts a strict-mode run.
// Unsupported schemes are never fatal.
func (d Diagnostic) Fatal() bool {
	switch d.Kind {
	case KindMissingFile, KindPointerNotFound, KindCycle:
		return true
	}
	return false
}

// String returns the message line.
func (d Diagnostic) String() string {
	return d.Message
}

// Err converts the diagnostic into a *oaserrors.ReferenceError.
func (d Diagnostic) Err() error {
	e := &oaserrors.ReferenceError{
		Ref:     d.Ref,
		RefType: "file",
		Target:  d.ID,
		Message: d.Message,
	}
	switch d.Kind {
	case KindMissingFile:
		e.IsMissingFile = true
	case KindPointerNotFound:
		e.IsPointerNotFound = true
	case KindCycle:
		e.IsCircular = true
	case KindUnsupportedScheme:
		e.IsUnsupportedScheme = true
		e.RefType = "url"
	}
	return e
}

func missingFileDiagnostic(ref Reference, st walkState) Diagnostic {
	return newDiagnostic(KindMissingFile, ref, st, fmt.Sprintf("Reference not found: %s", ref.File))
}

func pointerNotFoundDiagnostic(ref Reference, st walkState) Diagnostic {
	file := ref.File
	if file == "" {
		file = st.file
	}
	return newDiagnostic(KindPointerNotFound, ref, st, fmt.Sprintf("Component %s not found in %s", ref.Name(), file))
}

func cycleDiagnostic(ref Reference, st walkState) Diagnostic {
	return newDiagnostic(KindCycle, ref, st, fmt.Sprintf("Circular reference detected: %s", ref.ID()))
}

func unsupportedSchemeDiagnostic(ref Reference, st walkState) Diagnostic {
	return newDiagnostic(KindUnsupportedScheme, ref, st, fmt.Sprintf("Unsupported reference scheme: %s", ref.Raw))
}

func newDiagnostic(kind DiagnosticKind, ref Reference, st walkState, msg string) Diagnostic {
	id := ref.In(st.file).ID()
	return Diagnostic{
		Kind:     kind,
		Ref:      ref.Raw,
		ID:       id,
		File:     st.file,
		Location: st.location(),
		Message:  msg,
	}
}

type diagnosticKey struct {
	kind DiagnosticKind
	id   string
	file string
}

// diagnosticSet keeps diagnostics in report order without duplicates.
type diagnosticSet struct {
	seen  map[diagnosticKey]bool
	items []Diagnostic
}

func newDiagnosticSet() *diagnosticSet {
	return &diagnosticSet{seen: make(map[diagnosticKey]bool)}
}

// add records d and reports whether it was new.
func (s *diagnosticSet) add(d Diagnostic) bool {
	key := diagnosticKey{kind: d.Kind, id: d.ID, file: d.File}
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.items = append(s.items, d)
	return true
}

func (s *diagnosticSet) list() []Diagnostic {
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}
