// Package orphans computes and persists the current-minus-desired report.
//
// An orphan is an item present in the wiki but absent from the hierarchy
// document. Orphans are never deleted automatically; the report exists so
// a human (or the explicit prune command) can review them. When no orphans
// exist the report file is removed, so its presence alone is meaningful.
package orphans

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stacksync/core/fsutil"
	"stacksync/feature/hierarchy/desired"
	"stacksync/feature/hierarchy/snapshot"
)

// AdvisoryNote is written into every report.
const AdvisoryNote = "Items listed here exist in BookStack but are not in the hierarchy document. " +
	"They were NOT deleted. Review each one: either add it to the hierarchy or remove it " +
	"explicitly with 'stacksync prune'."

// Item identifies one orphaned entity.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Report is the persisted orphan report.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Note        string    `json:"note"`
	Shelves     []Item    `json:"orphaned_shelves"`
	Books       []Item    `json:"orphaned_books"`
	Chapters    []Item    `json:"orphaned_chapters"`
}

// Empty reports whether nothing is orphaned.
func (r *Report) Empty() bool {
	return len(r.Shelves) == 0 && len(r.Books) == 0 && len(r.Chapters) == 0
}

// Total returns the orphan count across all levels.
func (r *Report) Total() int {
	return len(r.Shelves) + len(r.Books) + len(r.Chapters)
}

// Find computes the set difference, current minus desired, at each level.
// Scoping mirrors the reconciler's matching: shelves at top level, books
// globally by name, chapters within their named parent book. Chapters of a
// book that is itself orphaned are covered by the book entry and not
// listed again. baseURL is the BookStack root used to build review links.
func Find(snap *snapshot.Snapshot, want *desired.Tree, baseURL string) *Report {
	base := strings.TrimRight(baseURL, "/")

	wantShelves := map[string]struct{}{}
	wantBooks := map[string]struct{}{}
	wantChapters := map[string]map[string]struct{}{}
	for _, s := range want.Shelves {
		wantShelves[s.Name] = struct{}{}
		for _, b := range s.Books {
			wantBooks[b.Name] = struct{}{}
			if wantChapters[b.Name] == nil {
				wantChapters[b.Name] = map[string]struct{}{}
			}
			for _, ch := range b.Chapters {
				wantChapters[b.Name][ch.Name] = struct{}{}
			}
		}
	}

	report := &Report{
		GeneratedAt: time.Now().UTC(),
		Note:        AdvisoryNote,
		Shelves:     []Item{},
		Books:       []Item{},
		Chapters:    []Item{},
	}

	for _, s := range snap.Hierarchy.Shelves {
		if _, ok := wantShelves[s.Name]; !ok {
			report.Shelves = append(report.Shelves, Item{
				ID:   s.ID,
				Name: s.Name,
				URL:  fmt.Sprintf("%s/shelves/%s", base, s.Slug),
			})
		}
	}

	// A book sitting on several shelves appears once per shelf in the
	// snapshot tree; report it only once.
	seenBooks := map[int64]struct{}{}
	checkBook := func(b snapshot.Book) {
		if _, dup := seenBooks[b.ID]; dup {
			return
		}
		seenBooks[b.ID] = struct{}{}
		if _, ok := wantBooks[b.Name]; !ok {
			report.Books = append(report.Books, Item{
				ID:   b.ID,
				Name: b.Name,
				URL:  fmt.Sprintf("%s/books/%s", base, b.Slug),
			})
			return
		}
		for _, ch := range b.Chapters {
			if _, ok := wantChapters[b.Name][ch.Name]; !ok {
				report.Chapters = append(report.Chapters, Item{
					ID:   ch.ID,
					Name: ch.Name,
					URL:  fmt.Sprintf("%s/books/%s/chapter/%s", base, b.Slug, ch.Slug),
				})
			}
		}
	}

	for _, s := range snap.Hierarchy.Shelves {
		for _, b := range s.Books {
			checkBook(b)
		}
	}
	for _, b := range snap.Hierarchy.OrphanBooks {
		checkBook(b)
	}

	return report
}

// WriteFile persists the report atomically. An empty report removes any
// pre-existing file instead, so absence means clean.
func WriteFile(path string, r *Report) error {
	if r.Empty() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("orphans: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("orphans: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("orphans: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

// ReadFile loads a previously written report. The prune command consumes
// it instead of refetching the remote state.
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("orphans: decode %s: %w", path, err)
	}
	return &r, nil
}
