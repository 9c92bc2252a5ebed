package snapshot

import (
	"context"

	"stacksync/core/bookstack"

	"go.uber.org/zap"
)

// Source is the slice of the BookStack client the fetch phase needs.
type Source interface {
	ListShelves(ctx context.Context) ([]bookstack.Shelf, error)
	ListBooks(ctx context.Context) ([]bookstack.Book, error)
	ListChapters(ctx context.Context) ([]bookstack.Chapter, error)
	ListPages(ctx context.Context) ([]bookstack.Page, error)
	GetPageContent(ctx context.Context, id int64) ([]bookstack.Tag, int, error)
}

// Fetch pulls the four flat collections from the API, hydrates per-page
// content hints, and builds the snapshot. Any fetch error is fatal: there
// is no point reconciling against an unknown current state.
func Fetch(ctx context.Context, src Source, log *zap.Logger) (*Snapshot, error) {
	shelves, err := src.ListShelves(ctx)
	if err != nil {
		return nil, err
	}
	books, err := src.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	chapters, err := src.ListChapters(ctx)
	if err != nil {
		return nil, err
	}
	pages, err := src.ListPages(ctx)
	if err != nil {
		return nil, err
	}

	// The page list payload has no content; hydrate length and tags from
	// each page's detail. Drafts are skipped, they are flagged already.
	for i := range pages {
		if pages[i].Draft {
			continue
		}
		tags, length, err := src.GetPageContent(ctx, pages[i].ID)
		if err != nil {
			return nil, err
		}
		pages[i].Tags = tags
		pages[i].ContentLength = length
	}

	log.Info("fetched current hierarchy",
		zap.Int("shelves", len(shelves)),
		zap.Int("books", len(books)),
		zap.Int("chapters", len(chapters)),
		zap.Int("pages", len(pages)),
	)

	return Build(shelves, books, chapters, pages), nil
}
