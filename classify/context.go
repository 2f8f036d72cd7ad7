package classify

// Scope controls how long heading context persists during a document walk.
type Scope int

const (
	// ScopePage clears the context at every page boundary. A section
	// heading on page 3 does not carry into page 4.
	ScopePage Scope = iota

	// ScopeDocument carries the context across page boundaries until a
	// new heading replaces it.
	ScopeDocument
)

// String returns a string representation of the scope.
func (s Scope) String() string {
	if s == ScopeDocument {
		return "document"
	}
	return "page"
}

// Tracker holds the current section and subsection labels as a page's
// content is walked top to bottom. It is a forward-only state machine:
// headings advance the state and nothing rolls it back.
//
// A Tracker is not safe for concurrent use. Each traversal owns its own
// instance.
type Tracker struct {
	scope      Scope
	section    *string
	subSection *string
}

// NewTracker creates a page-scoped tracker.
func NewTracker() *Tracker {
	return NewTrackerWithScope(ScopePage)
}

// NewTrackerWithScope creates a tracker with the given context scope.
func NewTrackerWithScope(scope Scope) *Tracker {
	return &Tracker{scope: scope}
}

// OnHeading records a heading. A Section heading replaces the current
// section and clears the subsection; a Subsection heading replaces only
// the subsection. Body input is ignored.
func (t *Tracker) OnHeading(class Class, text string) {
	switch class {
	case Section:
		s := text
		t.section = &s
		t.subSection = nil
	case Subsection:
		s := text
		t.subSection = &s
	}
}

// Current returns the context to tag the next content block with. The
// returned pointers are stable snapshots; later headings never mutate
// previously returned values.
func (t *Tracker) Current() (section, subSection *string) {
	return t.section, t.subSection
}

// StartPage marks a page boundary, clearing the context when the tracker
// is page-scoped.
func (t *Tracker) StartPage() {
	if t.scope == ScopePage {
		t.Reset()
	}
}

// Reset clears both labels unconditionally.
func (t *Tracker) Reset() {
	t.section = nil
	t.subSection = nil
}

// Scope returns the tracker's context scope.
func (t *Tracker) Scope() Scope {
	return t.scope
}
