package bundler

// StatusResolved marks a dependency edge whose target was found.
// Other edges carry the DiagnosticKind that was reported for them.
const StatusResolved = "resolved"

// Dependency is one edge of the reference graph: a file referencing a
// target identifier.
type Dependency struct {
	// From is the absolute path of the referencing document.
	From string `json:"from"`
	// Ref is the $ref value as written.
	Ref string `json:"ref"`
	// Target is the reference identifier (absolute file + "#" + pointer).
	Target string `json:"target"`
	// Status is StatusResolved or a DiagnosticKind.
	Status string `json:"status"`
}

type edgeKey struct {
	from, target string
}

// dependencyLog records each distinct edge once, keeping the first status.
type dependencyLog struct {
	seen  map[edgeKey]bool
	edges []Dependency
}

func newDependencyLog() *dependencyLog {
	return &dependencyLog{seen: make(map[edgeKey]bool)}
}

func (l *dependencyLog) add(from string, ref Reference, status string) {
	key := edgeKey{from: from, target: ref.ID()}
	if l.seen[key] {
		return
	}
	l.seen[key] = true
	l.edges = append(l.edges, Dependency{From: from, Ref: ref.Raw, Target: key.target, Status: status})
}

func (l *dependencyLog) list() []Dependency {
	out := make([]Dependency, len(l.edges))
	copy(out, l.edges)
	return out
}
