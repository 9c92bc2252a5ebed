package reconcile

import (
	"context"

	"stacksync/core/reconcile"
	"stacksync/feature/hierarchy/desired"
)

// shelfLevel reconciles shelves. Shelves match at the top level and have
// no parent.
type shelfLevel struct {
	idx  *runIndex
	want *desired.Tree
	m    Mutator
}

func (l *shelfLevel) Name() string { return "shelf" }

func (l *shelfLevel) Items() []reconcile.Item {
	items := make([]reconcile.Item, 0, len(l.want.Shelves))
	for _, s := range l.want.Shelves {
		items = append(items, reconcile.Item{
			Name:        s.Name,
			Description: s.Description,
			ParentOK:    true,
		})
	}
	return items
}

func (l *shelfLevel) Current(it reconcile.Item) (reconcile.Entry, bool) {
	e, ok := l.idx.shelves[it.Name]
	return e, ok
}

func (l *shelfLevel) Create(ctx context.Context, it reconcile.Item) (int64, error) {
	return l.m.CreateShelf(ctx, it.Name, it.Description)
}

func (l *shelfLevel) Update(ctx context.Context, it reconcile.Item, id int64) error {
	return l.m.UpdateShelfDescription(ctx, id, it.Description)
}

func (l *shelfLevel) Register(it reconcile.Item, id int64) {
	l.idx.registerShelf(it.Name, id, it.Description)
}

// bookLevel reconciles books. Books match anywhere by name, since a book
// may or may not yet be shelved; the shelf is only needed for attachment.
type bookLevel struct {
	idx  *runIndex
	want *desired.Tree
	m    Mutator
}

func (l *bookLevel) Name() string { return "book" }

func (l *bookLevel) Items() []reconcile.Item {
	var items []reconcile.Item
	for _, s := range l.want.Shelves {
		shelf, shelfOK := l.idx.shelves[s.Name]
		for _, b := range s.Books {
			items = append(items, reconcile.Item{
				Name:        b.Name,
				Description: b.Description,
				ParentName:  s.Name,
				ParentID:    shelf.ID,
				ParentOK:    shelfOK,
			})
		}
	}
	return items
}

func (l *bookLevel) Current(it reconcile.Item) (reconcile.Entry, bool) {
	e, ok := l.idx.books[it.Name]
	return e, ok
}

func (l *bookLevel) Create(ctx context.Context, it reconcile.Item) (int64, error) {
	return l.m.CreateBook(ctx, it.Name, it.Description)
}

func (l *bookLevel) Update(ctx context.Context, it reconcile.Item, id int64) error {
	return l.m.UpdateBookDescription(ctx, id, it.Description)
}

func (l *bookLevel) Register(it reconcile.Item, id int64) {
	l.idx.registerBook(it.Name, id, it.Description)
}

// Attach unions the book into its owning shelf's book-ID list. The union
// never removes existing books. Nothing happens when the shelf is unknown
// or the book is already on it.
func (l *bookLevel) Attach(ctx context.Context, it reconcile.Item, id int64) (bool, error) {
	if !it.ParentOK {
		return false, nil
	}
	set := l.idx.shelfBooks[it.ParentID]
	if set == nil {
		set = map[int64]struct{}{}
		l.idx.shelfBooks[it.ParentID] = set
	}
	if _, ok := set[id]; ok {
		return false, nil
	}
	set[id] = struct{}{}
	if err := l.m.UpdateShelfBooks(ctx, it.ParentID, l.idx.shelfBookIDs(it.ParentID)); err != nil {
		delete(set, id)
		return false, err
	}
	return true, nil
}

// chapterLevel reconciles chapters. Chapters match within their named
// parent book and cannot be created without a resolved book ID.
type chapterLevel struct {
	idx  *runIndex
	want *desired.Tree
	m    Mutator
}

func (l *chapterLevel) Name() string { return "chapter" }

func (l *chapterLevel) Items() []reconcile.Item {
	var items []reconcile.Item
	for _, s := range l.want.Shelves {
		for _, b := range s.Books {
			book, bookOK := l.idx.books[b.Name]
			for _, ch := range b.Chapters {
				items = append(items, reconcile.Item{
					Name:        ch.Name,
					Description: ch.Description,
					ParentName:  b.Name,
					ParentID:    book.ID,
					ParentOK:    bookOK,
					NeedsParent: true,
				})
			}
		}
	}
	return items
}

func (l *chapterLevel) Current(it reconcile.Item) (reconcile.Entry, bool) {
	e, ok := l.idx.chapters[it.ParentID][it.Name]
	return e, ok
}

func (l *chapterLevel) Create(ctx context.Context, it reconcile.Item) (int64, error) {
	return l.m.CreateChapter(ctx, it.ParentID, it.Name, it.Description)
}

func (l *chapterLevel) Update(ctx context.Context, it reconcile.Item, id int64) error {
	return l.m.UpdateChapterDescription(ctx, id, it.Description)
}

func (l *chapterLevel) Register(it reconcile.Item, id int64) {
	l.idx.registerChapter(it.ParentID, it.Name, id, it.Description)
}
