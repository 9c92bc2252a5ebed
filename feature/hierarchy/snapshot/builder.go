package snapshot

import (
	"sort"
	"time"

	"stacksync/core/bookstack"
)

// Build assembles flat API collections into the nested snapshot tree and
// computes the derived hints. It is a pure transformation: no network
// access, no side effects. Missing optional fields (descriptions,
// priorities) pass through as zero values.
func Build(shelves []bookstack.Shelf, books []bookstack.Book, chapters []bookstack.Chapter, pages []bookstack.Page) *Snapshot {
	booksByID := make(map[int64]bookstack.Book, len(books))
	for _, b := range books {
		booksByID[b.ID] = b
	}

	chaptersByBook := make(map[int64][]bookstack.Chapter)
	for _, ch := range chapters {
		chaptersByBook[ch.BookID] = append(chaptersByBook[ch.BookID], ch)
	}

	pagesByChapter := make(map[int64][]bookstack.Page)
	directPagesByBook := make(map[int64][]bookstack.Page)
	for _, p := range pages {
		if p.ChapterID != 0 {
			pagesByChapter[p.ChapterID] = append(pagesByChapter[p.ChapterID], p)
		} else {
			directPagesByBook[p.BookID] = append(directPagesByBook[p.BookID], p)
		}
	}

	buildBook := func(b bookstack.Book) Book {
		out := Book{
			ID:          b.ID,
			Name:        b.Name,
			Slug:        b.Slug,
			Description: b.Description,
			Chapters:    []Chapter{},
			DirectPages: []Page{},
		}
		for _, ch := range chaptersByBook[b.ID] {
			outCh := Chapter{
				ID:          ch.ID,
				Name:        ch.Name,
				Slug:        ch.Slug,
				Description: ch.Description,
				Priority:    ch.Priority,
				Pages:       []Page{},
			}
			for _, p := range pagesByChapter[ch.ID] {
				outCh.Pages = append(outCh.Pages, buildPage(p))
			}
			out.Chapters = append(out.Chapters, outCh)
		}
		for _, p := range directPagesByBook[b.ID] {
			out.DirectPages = append(out.DirectPages, buildPage(p))
		}
		return out
	}

	snap := &Snapshot{
		GeneratedAt: time.Now().UTC(),
		Hierarchy: Hierarchy{
			Shelves:     []Shelf{},
			OrphanBooks: []Book{},
		},
	}

	shelved := make(map[int64]struct{})
	for _, s := range shelves {
		outShelf := Shelf{
			ID:          s.ID,
			Name:        s.Name,
			Slug:        s.Slug,
			Description: s.Description,
			Books:       []Book{},
		}
		for _, bookID := range s.BookIDs {
			b, ok := booksByID[bookID]
			if !ok {
				// Stale reference in the shelf's book list; skip it.
				continue
			}
			shelved[bookID] = struct{}{}
			outShelf.Books = append(outShelf.Books, buildBook(b))
		}
		snap.Hierarchy.Shelves = append(snap.Hierarchy.Shelves, outShelf)
	}

	// Books referenced by no shelf form the orphan book set.
	var orphanIDs []int64
	for _, b := range books {
		if _, ok := shelved[b.ID]; !ok {
			orphanIDs = append(orphanIDs, b.ID)
		}
	}
	sort.Slice(orphanIDs, func(i, j int) bool { return orphanIDs[i] < orphanIDs[j] })
	for _, id := range orphanIDs {
		snap.Hierarchy.OrphanBooks = append(snap.Hierarchy.OrphanBooks, buildBook(booksByID[id]))
	}

	snap.Stats = Stats{
		Shelves:     len(shelves),
		Books:       len(books),
		Chapters:    len(chapters),
		Pages:       len(pages),
		OrphanBooks: len(snap.Hierarchy.OrphanBooks),
	}

	return snap
}

func buildPage(p bookstack.Page) Page {
	tags := make([]Tag, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, Tag{Name: t.Name, Value: t.Value})
	}
	return Page{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		BookID:        p.BookID,
		ChapterID:     p.ChapterID,
		Draft:         p.Draft,
		Tags:          tags,
		ContentLength: p.ContentLength,
		NeedsContent:  p.ContentLength < contentLengthThreshold,
		ContentType:   classifyContent(p.Name),
	}
}
