package snapshot

import "time"

// Snapshot is the immutable view of the live hierarchy taken at run start,
// exported as JSON for downstream consumers (seeding tools, inbox
// organizers). It is re-derivable at any time and never authoritative.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`
	Stats       Stats     `json:"stats"`
	Hierarchy   Hierarchy `json:"hierarchy"`
}

// Stats summarizes the snapshot for the run log.
type Stats struct {
	Shelves     int `json:"shelves"`
	Books       int `json:"books"`
	Chapters    int `json:"chapters"`
	Pages       int `json:"pages"`
	OrphanBooks int `json:"orphan_books"`
}

// Hierarchy is the nested tree. Books referenced by no shelf land in
// OrphanBooks rather than disappearing.
type Hierarchy struct {
	Shelves     []Shelf `json:"shelves"`
	OrphanBooks []Book  `json:"orphan_books"`
}

// Shelf is a shelf with its resolved book children.
type Shelf struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Books       []Book `json:"books"`
}

// Book is a book with its chapter children and direct pages (pages not
// inside any chapter).
type Book struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Chapters    []Chapter `json:"chapters"`
	DirectPages []Page    `json:"direct_pages"`
}

// Chapter is a chapter with its pages.
type Chapter struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Pages       []Page `json:"pages"`
}

// Tag is a key:value page label (e.g. status:draft).
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Page is a leaf document with the derived hints consumers use to decide
// what still needs writing.
type Page struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	BookID        int64  `json:"book_id"`
	ChapterID     int64  `json:"chapter_id,omitempty"`
	Draft         bool   `json:"draft"`
	Tags          []Tag  `json:"tags,omitempty"`
	ContentLength int    `json:"content_length"`
	// NeedsContent flags pages whose visible text is below the threshold.
	NeedsContent bool `json:"needs_content"`
	// ContentType is a best-effort classification from the page name, not
	// authoritative.
	ContentType string `json:"content_type"`
}
