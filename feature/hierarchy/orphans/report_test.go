package orphans

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stacksync/feature/hierarchy/desired"
	"stacksync/feature/hierarchy/snapshot"
)

func currentSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Hierarchy: snapshot.Hierarchy{
			Shelves: []snapshot.Shelf{
				{
					ID: 1, Name: "Engineering", Slug: "engineering",
					Books: []snapshot.Book{
						{
							ID: 10, Name: "Runbook", Slug: "runbook",
							Chapters: []snapshot.Chapter{
								{ID: 100, Name: "Alerts", Slug: "alerts"},
								{ID: 101, Name: "Legacy", Slug: "legacy"},
							},
						},
					},
				},
				{ID: 2, Name: "Old Shelf", Slug: "old-shelf"},
			},
			OrphanBooks: []snapshot.Book{
				{
					ID: 20, Name: "Scratch", Slug: "scratch",
					Chapters: []snapshot.Chapter{
						{ID: 200, Name: "Notes", Slug: "notes"},
					},
				},
			},
		},
	}
}

func desiredTree() *desired.Tree {
	return &desired.Tree{Shelves: []desired.Shelf{
		{
			Name: "Engineering",
			Books: []desired.Book{
				{
					Name: "Runbook",
					Chapters: []desired.Chapter{
						{Name: "Alerts"},
					},
				},
			},
		},
	}}
}

func TestFind_SetDifferencePerLevel(t *testing.T) {
	report := Find(currentSnapshot(), desiredTree(), "https://wiki.example.com/")

	require.Len(t, report.Shelves, 1)
	assert.Equal(t, Item{ID: 2, Name: "Old Shelf", URL: "https://wiki.example.com/shelves/old-shelf"}, report.Shelves[0])

	// The orphan book covers its chapters; "Notes" is not listed.
	require.Len(t, report.Books, 1)
	assert.Equal(t, Item{ID: 20, Name: "Scratch", URL: "https://wiki.example.com/books/scratch"}, report.Books[0])

	require.Len(t, report.Chapters, 1)
	assert.Equal(t, Item{ID: 101, Name: "Legacy", URL: "https://wiki.example.com/books/runbook/chapter/legacy"}, report.Chapters[0])

	assert.Equal(t, 3, report.Total())
	assert.False(t, report.Empty())
	assert.Equal(t, AdvisoryNote, report.Note)
}

func TestFind_FullyDesiredStateIsEmpty(t *testing.T) {
	snap := currentSnapshot()
	want := &desired.Tree{Shelves: []desired.Shelf{
		{
			Name: "Engineering",
			Books: []desired.Book{
				{Name: "Runbook", Chapters: []desired.Chapter{{Name: "Alerts"}, {Name: "Legacy"}}},
				{Name: "Scratch", Chapters: []desired.Chapter{{Name: "Notes"}}},
			},
		},
		{Name: "Old Shelf"},
	}}

	report := Find(snap, want, "https://wiki.example.com")
	assert.True(t, report.Empty())
	assert.Equal(t, 0, report.Total())
}

func TestFind_BookOnTwoShelvesReportedOnce(t *testing.T) {
	snap := &snapshot.Snapshot{
		Hierarchy: snapshot.Hierarchy{
			Shelves: []snapshot.Shelf{
				{ID: 1, Name: "A", Books: []snapshot.Book{{ID: 10, Name: "Shared", Slug: "shared"}}},
				{ID: 2, Name: "B", Books: []snapshot.Book{{ID: 10, Name: "Shared", Slug: "shared"}}},
			},
		},
	}
	want := &desired.Tree{Shelves: []desired.Shelf{{Name: "A"}, {Name: "B"}}}

	report := Find(snap, want, "https://wiki.example.com")
	assert.Len(t, report.Books, 1)
}

func TestWriteFile_EmptyReportRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orphans.json")

	full := &Report{
		GeneratedAt: time.Now().UTC(),
		Note:        AdvisoryNote,
		Shelves:     []Item{{ID: 2, Name: "Old Shelf", URL: "u"}},
		Books:       []Item{},
		Chapters:    []Item{},
	}
	require.NoError(t, WriteFile(path, full))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, full.Shelves, got.Shelves)
	assert.Equal(t, AdvisoryNote, got.Note)

	empty := &Report{Shelves: []Item{}, Books: []Item{}, Chapters: []Item{}}
	require.NoError(t, WriteFile(path, empty))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Removing an already absent report is fine.
	require.NoError(t, WriteFile(path, empty))
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, os.IsNotExist(err))
}
