package bundler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasbundle/internal/pathutil"
	"github.com/erraggy/oasbundle/node"
	"github.com/erraggy/oasbundle/oaserrors"
)

// Stats counts what a bundle run did.
type Stats struct {
	FilesLoaded         int `json:"files_loaded"`
	ExternalRefs        int `json:"external_refs"`
	ComponentsCollected int `json:"components_collected"`
	ComponentsMerged    int `json:"components_merged"`
	RefsSpliced         int `json:"refs_spliced"`
	RefsRewritten       int `json:"refs_rewritten"`
}

// session is the state of one bundle run. Nothing in it outlives the run.
type session struct {
	rootFile string
	strict   bool
	maxDepth int

	paths *PathResolver
	cache *DocumentCache
	log   Logger

	table *ComponentTable
	// index maps a reference identifier to the component it was stored as.
	// Entries are added before the fragment is walked, so references that
	// cycle back can still be rewritten.
	index map[string]ComponentKey
	// spliced maps splice targets whose dependencies were already collected
	// to the slot they were first spliced into.
	spliced map[string]slot
	// promoted holds whole-document schemas that refer back to themselves.
	// They are stored as components instead of being spliced.
	promoted map[string]ComponentKey

	// set before the final pass
	merged     map[*node.Node]bool
	mergedRoot *node.Node

	diags *diagnosticSet
	deps  *dependencyLog
	stats Stats
}

func newSession(rootFile string, strict bool, maxDepth int, paths *PathResolver, cache *DocumentCache, log Logger) *session {
	if maxDepth <= 0 {
		maxDepth = MaxRefDepth
	}
	return &session{
		rootFile: rootFile,
		strict:   strict,
		maxDepth: maxDepth,
		paths:    paths,
		cache:    cache,
		log:      log,
		table:    NewComponentTable(),
		index:    make(map[string]ComponentKey),
		spliced:  make(map[string]slot),
		promoted: make(map[string]ComponentKey),
		diags:    newDiagnosticSet(),
		deps:     newDependencyLog(),
	}
}

// walkState is the position of a traversal: which file the current node
// came from and which references led there.
type walkState struct {
	file string
	dir  string
	// inRoot is set while walking the entry document itself, where local
	// references are normalized rather than followed.
	inRoot  bool
	visited VisitedSet
	loc     *pathutil.PointerBuilder
}

func (s *session) rootState() walkState {
	return walkState{
		file:    s.rootFile,
		dir:     filepath.Dir(s.rootFile),
		inRoot:  true,
		visited: NewVisitedSet(s.rootFile + "#"),
		loc:     pathutil.Get(),
	}
}

// follow returns the state for walking the target of ref. Callers release it.
func (st walkState) follow(ref Reference) walkState {
	loc := pathutil.Get()
	for _, seg := range ref.Pointer {
		loc.Push(seg)
	}
	return walkState{
		file:    ref.File,
		dir:     filepath.Dir(ref.File),
		visited: st.visited.With(ref.ID()),
		loc:     loc,
	}
}

func (st walkState) release() {
	pathutil.Put(st.loc)
}

func (st walkState) location() string {
	if st.loc == nil {
		return ""
	}
	return st.loc.String()
}

// resolveRef parses raw in the context of st. Local references inside
// followed documents are anchored to their own file.
func (s *session) resolveRef(raw string, st walkState) Reference {
	ref := s.paths.Resolve(raw, st.dir)
	if ref.IsLocal() && !st.inRoot {
		ref = ref.In(st.file)
	}
	return ref
}

// aliasTarget returns the target of a component fragment that consists of
// nothing but a reference to another component stored under the same key.
func (s *session) aliasTarget(frag *node.Node, key ComponentKey, st walkState, sl slot) (Reference, bool) {
	raw, ok := frag.Ref()
	if !ok || frag.Len() != 1 {
		return Reference{}, false
	}
	ref := s.resolveRef(raw, st)
	if ref.Unsupported || ref.IsLocal() {
		return Reference{}, false
	}
	target, ok := classify(ref, sl)
	return ref, ok && target == key
}

// report records d. It returns d as an error when d is fatal in strict mode.
func (s *session) report(d Diagnostic) error {
	if !s.diags.add(d) {
		return nil
	}
	if s.strict && d.Fatal() {
		s.log.Error(d.Message, "kind", string(d.Kind), "file", d.File, "location", d.Location)
		return d.Err()
	}
	s.log.Warn(d.Message, "kind", string(d.Kind), "file", d.File, "location", d.Location)
	return nil
}

// cyclic reports whether ref is already on the current path, recording
// the cycle when it is.
func (s *session) cyclic(ref Reference, st walkState) (bool, error) {
	if !st.visited.Contains(ref.ID()) {
		return false, nil
	}
	s.deps.add(st.file, ref, string(KindCycle))
	return true, s.report(cycleDiagnostic(ref, st))
}

// checkDepth enforces the maximum reference chain length.
func (s *session) checkDepth(ref Reference, st walkState) error {
	if st.visited.Len() < s.maxDepth {
		return nil
	}
	return &oaserrors.ResourceLimitError{
		ResourceType: "ref_depth",
		Limit:        int64(s.maxDepth),
		Actual:       int64(st.visited.Len() + 1),
		Message:      ref.ID(),
	}
}

// load fetches the fragment ref points at. A nil fragment with a nil error
// means the reference was reported and should be left as written.
func (s *session) load(ref Reference, st walkState) (*node.Node, error) {
	doc, err := s.cache.Load(ref.File)
	if err != nil {
		var refErr *oaserrors.ReferenceError
		if errors.As(err, &refErr) && refErr.IsMissingFile {
			s.deps.add(st.file, ref, string(KindMissingFile))
			return nil, s.report(missingFileDiagnostic(ref, st))
		}
		return nil, err
	}
	frag, ok := lookupFragment(doc, ref.Pointer)
	if !ok {
		s.deps.add(st.file, ref, string(KindPointerNotFound))
		return nil, s.report(pointerNotFoundDiagnostic(ref, st))
	}
	s.deps.add(st.file, ref, StatusResolved)
	return frag, nil
}

// recursiveSchema reports whether ref, found in slot sl, re-enters a
// whole-document schema that is still being spliced.
func (s *session) recursiveSchema(ref Reference, sl slot, st walkState) bool {
	if len(ref.Pointer) != 0 || !sl.schema {
		return false
	}
	outer, ok := s.spliced[ref.ID()]
	return ok && outer.schema && st.visited.Contains(ref.ID())
}

// promote stores the whole-document schema ref points at as a component
// named after its file. Names already used by the entry document or by
// collected components get a numeric suffix.
func (s *session) promote(ref Reference) {
	id := ref.ID()
	if _, ok := s.promoted[id]; ok {
		return
	}
	base := strings.TrimSuffix(filepath.Base(ref.File), filepath.Ext(ref.File))
	key := ComponentKey{Category: pathutil.CategorySchemas, Name: base}
	for i := 2; s.rootDefines(key) || !s.table.Reserve(key); i++ {
		key.Name = fmt.Sprintf("%s%d", base, i)
	}
	s.promoted[id] = key
	s.log.Debug("recursive schema document stored as component", "file", ref.File, "name", key.Name)
}

func (s *session) rootDefines(key ComponentKey) bool {
	doc, err := s.cache.Load(s.rootFile)
	if err != nil {
		return false
	}
	_, ok := node.Lookup(doc, []string{"components", key.Category, key.Name})
	return ok
}
