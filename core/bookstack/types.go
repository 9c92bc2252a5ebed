package bookstack

import "encoding/json"

// Shelf is a BookStack bookshelf. BookIDs is only populated for shelf
// details; the list endpoint omits the book relation.
type Shelf struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	BookIDs     []int64 `json:"-"`
}

// shelfDetail mirrors the GET /shelves/{id} payload, which carries the
// shelf's books as embedded stubs.
type shelfDetail struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Books       []struct {
		ID int64 `json:"id"`
	} `json:"books"`
}

// Book is a BookStack book. A book may sit on any number of shelves,
// including none.
type Book struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Chapter is a BookStack chapter; it belongs to exactly one book.
type Chapter struct {
	ID          int64  `json:"id"`
	BookID      int64  `json:"book_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// Tag is a key:value label attached to a page.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Page is a BookStack page. ChapterID is zero for pages that sit directly
// in a book. ContentLength is derived from the page detail payload by the
// client; the list endpoint does not carry content.
type Page struct {
	ID            int64  `json:"id"`
	BookID        int64  `json:"book_id"`
	ChapterID     int64  `json:"chapter_id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Draft         bool   `json:"draft"`
	Tags          []Tag  `json:"tags"`
	ContentLength int    `json:"content_length"`
}

// pageDetail mirrors the GET /pages/{id} payload fields we consume.
type pageDetail struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	Tags     []Tag  `json:"tags"`
}

// listEnvelope is the shared shape of every BookStack list response.
type listEnvelope struct {
	Data  []json.RawMessage `json:"data"`
	Total int               `json:"total"`
}
