package reconcile

import (
	"sort"

	"stacksync/core/reconcile"
	"stacksync/feature/hierarchy/snapshot"
)

// runIndex is the mutable name-to-ID view of the current state for one
// run. It starts from the snapshot and grows as items are created, so
// just-created parents resolve for later levels. It replaces the global
// caches of earlier tooling with explicit per-run state.
type runIndex struct {
	// shelves maps shelf name to its entry; shelves match at top level.
	shelves map[string]reconcile.Entry
	// shelfBooks maps shelf ID to the set of book IDs on it.
	shelfBooks map[int64]map[int64]struct{}
	// books maps book name to its entry. Matching is global by name, not
	// per shelf: two shelves cannot each hold a distinct book of the same
	// name. Known limitation, kept as observed behavior.
	books map[string]reconcile.Entry
	// chapters maps book ID to chapter name to entry; chapters match
	// within their parent book.
	chapters map[int64]map[string]reconcile.Entry
}

func newRunIndex(snap *snapshot.Snapshot) *runIndex {
	idx := &runIndex{
		shelves:    map[string]reconcile.Entry{},
		shelfBooks: map[int64]map[int64]struct{}{},
		books:      map[string]reconcile.Entry{},
		chapters:   map[int64]map[string]reconcile.Entry{},
	}

	indexBook := func(b snapshot.Book) {
		idx.books[b.Name] = reconcile.Entry{ID: b.ID, Description: b.Description}
		for _, ch := range b.Chapters {
			if idx.chapters[b.ID] == nil {
				idx.chapters[b.ID] = map[string]reconcile.Entry{}
			}
			idx.chapters[b.ID][ch.Name] = reconcile.Entry{ID: ch.ID, Description: ch.Description}
		}
	}

	for _, s := range snap.Hierarchy.Shelves {
		idx.shelves[s.Name] = reconcile.Entry{ID: s.ID, Description: s.Description}
		set := map[int64]struct{}{}
		for _, b := range s.Books {
			set[b.ID] = struct{}{}
			indexBook(b)
		}
		idx.shelfBooks[s.ID] = set
	}
	for _, b := range snap.Hierarchy.OrphanBooks {
		indexBook(b)
	}

	return idx
}

func (idx *runIndex) registerShelf(name string, id int64, description string) {
	idx.shelves[name] = reconcile.Entry{ID: id, Description: description}
	if idx.shelfBooks[id] == nil {
		idx.shelfBooks[id] = map[int64]struct{}{}
	}
}

func (idx *runIndex) registerBook(name string, id int64, description string) {
	idx.books[name] = reconcile.Entry{ID: id, Description: description}
}

func (idx *runIndex) registerChapter(bookID int64, name string, id int64, description string) {
	if idx.chapters[bookID] == nil {
		idx.chapters[bookID] = map[string]reconcile.Entry{}
	}
	idx.chapters[bookID][name] = reconcile.Entry{ID: id, Description: description}
}

// shelfBookIDs returns the sorted book-ID list of a shelf.
func (idx *runIndex) shelfBookIDs(shelfID int64) []int64 {
	set := idx.shelfBooks[shelfID]
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
