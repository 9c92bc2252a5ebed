package desired

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDoc = `
shelves:
  Engineering:
    description: Team docs
    books:
      Runbook:
        description: Ops
        chapters:
          Alerts: On call
          Deploys:
            description: Release process
  Getting Started:
    description: Onboarding
`

func TestLoad_FullDocument(t *testing.T) {
	tree, err := Load([]byte(fullDoc))
	require.NoError(t, err)
	require.Len(t, tree.Shelves, 2)

	eng := tree.Shelves[0]
	assert.Equal(t, "Engineering", eng.Name)
	assert.Equal(t, "Team docs", eng.Description)
	require.Len(t, eng.Books, 1)

	book := eng.Books[0]
	assert.Equal(t, "Runbook", book.Name)
	assert.Equal(t, "Ops", book.Description)
	require.Len(t, book.Chapters, 2)

	// Scalar form and mapping form both parse to a description.
	assert.Equal(t, Chapter{Name: "Alerts", Description: "On call"}, book.Chapters[0])
	assert.Equal(t, Chapter{Name: "Deploys", Description: "Release process"}, book.Chapters[1])

	// Document order is preserved.
	assert.Equal(t, "Getting Started", tree.Shelves[1].Name)
	assert.Empty(t, tree.Shelves[1].Books)
}

func TestLoad_ShelfWithoutBooks(t *testing.T) {
	tree, err := Load([]byte("shelves:\n  Solo:\n    description: d\n"))
	require.NoError(t, err)
	require.Len(t, tree.Shelves, 1)
	assert.Empty(t, tree.Shelves[0].Books)
}

func TestLoad_MissingDescriptionsAreEmpty(t *testing.T) {
	doc := `
shelves:
  Bare:
    books:
      Empty Book:
        chapters:
          Thin: ""
`
	tree, err := Load([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, tree.Shelves[0].Description)
	assert.Empty(t, tree.Shelves[0].Books[0].Description)
	assert.Empty(t, tree.Shelves[0].Books[0].Chapters[0].Description)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		path string
	}{
		{"empty document", "", ""},
		{"top level list", "- a\n- b\n", ""},
		{"missing shelves", "other: {}\n", ""},
		{"shelves not a mapping", "shelves:\n  - Engineering\n", "shelves"},
		{"shelf not a mapping", "shelves:\n  Engineering: just text\n", "shelves.Engineering"},
		{"duplicate shelf", "shelves:\n  A: {}\n  A: {}\n", "shelves.A"},
		{"books not a mapping", "shelves:\n  A:\n    books:\n      - B\n", "shelves.A.books"},
		{"duplicate book", "shelves:\n  A:\n    books:\n      B: {}\n      B: {}\n", "shelves.A.books.B"},
		{"chapters not a mapping", "shelves:\n  A:\n    books:\n      B:\n        chapters:\n          - C\n", "shelves.A.books.B.chapters"},
		{"chapter is a list", "shelves:\n  A:\n    books:\n      B:\n        chapters:\n          C:\n            - x\n", "shelves.A.books.B.chapters.C"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load([]byte(tc.doc))
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.path, perr.Path)
		})
	}
}

func TestLoadFile_MissingFileIsParseError(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
