package reconcile

import "context"

// Op is the decision made for a single desired item.
type Op string

const (
	// OpCreate means no current item matched and one was created.
	OpCreate Op = "create"
	// OpUpdate means a match existed but its description differed.
	OpUpdate Op = "update"
	// OpNoop means a match existed with an identical description.
	OpNoop Op = "noop"
	// OpSkip means the item's parent could not be resolved.
	OpSkip Op = "skip"
)

// Item is one desired entry at a level, with its parent scope resolved by
// the level implementation before the pass starts.
type Item struct {
	// Name is the exact, case-sensitive match key within the item's scope.
	Name string
	// Description is the desired free-text description.
	Description string
	// ParentName names the owning item one level up, empty for shelves.
	ParentName string
	// ParentID is the resolved remote ID of the parent, valid when ParentOK.
	ParentID int64
	// ParentOK reports whether the parent resolved to a usable ID.
	ParentOK bool
	// NeedsParent marks items that cannot be created without a parent ID.
	// Chapters need their book; books only need their shelf for attachment.
	NeedsParent bool
}

// Entry is a current remote item found by a level lookup.
type Entry struct {
	ID          int64
	Description string
}

// Decision records one reconciliation outcome for the audit trail. The
// sequence of decisions is identical between dry-run and live mode.
type Decision struct {
	Level  string `json:"level"`
	Op     Op     `json:"op"`
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Counters aggregates per-level outcomes.
type Counters struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Attached  int `json:"attached"`
	Errors    int `json:"errors"`
}

// Summary is the result of one reconciliation run.
type Summary struct {
	// Levels maps level name to its counters.
	Levels map[string]*Counters `json:"levels"`
	// Decisions lists every decision in processing order.
	Decisions []Decision `json:"decisions"`
}

// Errored reports the total error count across levels.
func (s *Summary) Errored() int {
	total := 0
	for _, c := range s.Levels {
		total += c.Errors
	}
	return total
}

// Changed reports whether any remote mutation was decided (created,
// updated, or attached) during the run.
func (s *Summary) Changed() bool {
	for _, c := range s.Levels {
		if c.Created > 0 || c.Updated > 0 || c.Attached > 0 {
			return true
		}
	}
	return false
}

// Level abstracts one tier of the hierarchy so the pass is written once
// instead of three near-duplicate loops. Implementations share a run index
// that earlier levels populate: a book created during this run must accept
// its chapters even though it was absent from the starting snapshot.
type Level interface {
	// Name identifies the level ("shelf", "book", "chapter").
	Name() string

	// Items returns desired entries for this level. It is called after all
	// earlier levels finished, so parent IDs created this run resolve.
	Items() []Item

	// Current looks up a remote item matching the desired item's name
	// within its scope. ok is false when nothing matches.
	Current(it Item) (entry Entry, ok bool)

	// Create makes the remote item and returns its new ID.
	Create(ctx context.Context, it Item) (int64, error)

	// Update rewrites the matched item's description. The name is never
	// changed once matched.
	Update(ctx context.Context, it Item, id int64) error

	// Register records a created or confirmed ID in the run index so later
	// lookups and levels can resolve it.
	Register(it Item, id int64)
}

// Attacher is implemented by levels whose confirmed items must also be
// bound into a parent collection (books into a shelf's book-ID list).
// Attach returns false when the binding already existed; the union is
// idempotent and never removes existing members.
type Attacher interface {
	Attach(ctx context.Context, it Item, id int64) (changed bool, err error)
}
