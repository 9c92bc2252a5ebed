package snapshot

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stacksync/core/bookstack"
)

type fakeSource struct {
	shelves  []bookstack.Shelf
	books    []bookstack.Book
	chapters []bookstack.Chapter
	pages    []bookstack.Page

	listPagesErr error
	contentErr   error
	contentCalls []int64
}

func (f *fakeSource) ListShelves(context.Context) ([]bookstack.Shelf, error) {
	return f.shelves, nil
}

func (f *fakeSource) ListBooks(context.Context) ([]bookstack.Book, error) {
	return f.books, nil
}

func (f *fakeSource) ListChapters(context.Context) ([]bookstack.Chapter, error) {
	return f.chapters, nil
}

func (f *fakeSource) ListPages(context.Context) ([]bookstack.Page, error) {
	return f.pages, f.listPagesErr
}

func (f *fakeSource) GetPageContent(_ context.Context, id int64) ([]bookstack.Tag, int, error) {
	if f.contentErr != nil {
		return nil, 0, f.contentErr
	}
	f.contentCalls = append(f.contentCalls, id)
	return []bookstack.Tag{{Name: "seen", Value: fmt.Sprint(id)}}, int(id) * 10, nil
}

func TestFetch_HydratesPageContent(t *testing.T) {
	src := &fakeSource{
		books: []bookstack.Book{{ID: 1, Name: "B"}},
		pages: []bookstack.Page{
			{ID: 5, BookID: 1, Name: "Written"},
			{ID: 6, BookID: 1, Name: "WIP", Draft: true},
		},
	}

	snap, err := Fetch(context.Background(), src, zap.NewNop())
	require.NoError(t, err)

	// Only the non-draft page is hydrated.
	assert.Equal(t, []int64{5}, src.contentCalls)

	require.Len(t, snap.Hierarchy.OrphanBooks, 1)
	pages := snap.Hierarchy.OrphanBooks[0].DirectPages
	require.Len(t, pages, 2)
	assert.Equal(t, 50, pages[0].ContentLength)
	assert.True(t, pages[0].NeedsContent)
	assert.Equal(t, []Tag{{Name: "seen", Value: "5"}}, pages[0].Tags)
	assert.True(t, pages[1].Draft)
	assert.Zero(t, pages[1].ContentLength)
}

func TestFetch_ListErrorIsFatal(t *testing.T) {
	src := &fakeSource{listPagesErr: fmt.Errorf("offline")}

	snap, err := Fetch(context.Background(), src, zap.NewNop())
	assert.Nil(t, snap)
	assert.EqualError(t, err, "offline")
}

func TestFetch_ContentErrorIsFatal(t *testing.T) {
	src := &fakeSource{
		pages:      []bookstack.Page{{ID: 5, BookID: 1}},
		contentErr: fmt.Errorf("page gone"),
	}

	snap, err := Fetch(context.Background(), src, zap.NewNop())
	assert.Nil(t, snap)
	assert.EqualError(t, err, "page gone")
}
