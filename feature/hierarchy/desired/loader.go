// Package desired parses the declarative hierarchy document into the tree
// the reconciler consumes.
//
// The document is YAML with a shelves mapping; each shelf maps to
// {description, books}, each book to {description, chapters}, and each
// chapter to a description string (or {description}). Desired entries
// never carry remote IDs; IDs are resolved at reconciliation time by name
// lookup against the current snapshot.
//
// Document order is preserved for readability but is not semantically
// significant: matching is by name, not position. Duplicate names within
// one scope are a configuration error and fail loudly.
package desired

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseError indicates the hierarchy document is structurally invalid. It
// is fatal and aborts a run before any mutation.
type ParseError struct {
	Path string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "desired: " + e.Msg
	}
	return fmt.Sprintf("desired: %s: %s", e.Path, e.Msg)
}

// Tree is the parsed desired hierarchy.
type Tree struct {
	Shelves []Shelf
}

// Shelf is a desired shelf and its books, in document order.
type Shelf struct {
	Name        string
	Description string
	Books       []Book
}

// Book is a desired book and its chapters.
type Book struct {
	Name        string
	Description string
	Chapters    []Chapter
}

// Chapter is a desired chapter.
type Chapter struct {
	Name        string
	Description string
}

// LoadFile reads and parses the hierarchy document at path.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Msg: err.Error()}
	}
	return Load(data)
}

// Load parses a hierarchy document.
func Load(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Msg: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ParseError{Msg: "empty document"}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Msg: "top level must be a mapping"}
	}

	shelvesNode := childValue(root, "shelves")
	if shelvesNode == nil {
		return nil, &ParseError{Msg: "missing required 'shelves' mapping"}
	}
	if shelvesNode.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: "shelves", Msg: "must be a mapping of shelf name to definition"}
	}

	tree := &Tree{}
	seenShelves := map[string]struct{}{}

	for i := 0; i < len(shelvesNode.Content); i += 2 {
		nameNode, valNode := shelvesNode.Content[i], shelvesNode.Content[i+1]
		name := nameNode.Value
		path := "shelves." + name

		if name == "" {
			return nil, &ParseError{Path: "shelves", Msg: "shelf with empty name"}
		}
		if _, dup := seenShelves[name]; dup {
			return nil, &ParseError{Path: path, Msg: "duplicate shelf name"}
		}
		seenShelves[name] = struct{}{}

		shelf, err := parseShelf(name, valNode, path)
		if err != nil {
			return nil, err
		}
		tree.Shelves = append(tree.Shelves, *shelf)
	}

	return tree, nil
}

func parseShelf(name string, node *yaml.Node, path string) (*Shelf, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path, Msg: "shelf definition must be a mapping"}
	}

	shelf := &Shelf{
		Name:        name,
		Description: scalarChild(node, "description"),
	}

	booksNode := childValue(node, "books")
	if booksNode == nil {
		return shelf, nil
	}
	if booksNode.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path + ".books", Msg: "must be a mapping of book name to definition"}
	}

	seen := map[string]struct{}{}
	for i := 0; i < len(booksNode.Content); i += 2 {
		bookName, valNode := booksNode.Content[i].Value, booksNode.Content[i+1]
		bookPath := path + ".books." + bookName

		if bookName == "" {
			return nil, &ParseError{Path: path + ".books", Msg: "book with empty name"}
		}
		if _, dup := seen[bookName]; dup {
			return nil, &ParseError{Path: bookPath, Msg: "duplicate book name"}
		}
		seen[bookName] = struct{}{}

		book, err := parseBook(bookName, valNode, bookPath)
		if err != nil {
			return nil, err
		}
		shelf.Books = append(shelf.Books, *book)
	}

	return shelf, nil
}

func parseBook(name string, node *yaml.Node, path string) (*Book, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path, Msg: "book definition must be a mapping"}
	}

	book := &Book{
		Name:        name,
		Description: scalarChild(node, "description"),
	}

	chaptersNode := childValue(node, "chapters")
	if chaptersNode == nil {
		return book, nil
	}
	if chaptersNode.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path + ".chapters", Msg: "must be a mapping of chapter name to description"}
	}

	seen := map[string]struct{}{}
	for i := 0; i < len(chaptersNode.Content); i += 2 {
		chapterName, valNode := chaptersNode.Content[i].Value, chaptersNode.Content[i+1]
		chapterPath := path + ".chapters." + chapterName

		if chapterName == "" {
			return nil, &ParseError{Path: path + ".chapters", Msg: "chapter with empty name"}
		}
		if _, dup := seen[chapterName]; dup {
			return nil, &ParseError{Path: chapterPath, Msg: "duplicate chapter name"}
		}
		seen[chapterName] = struct{}{}

		chapter := Chapter{Name: chapterName}
		switch valNode.Kind {
		case yaml.ScalarNode:
			chapter.Description = valNode.Value
		case yaml.MappingNode:
			chapter.Description = scalarChild(valNode, "description")
		default:
			return nil, &ParseError{Path: chapterPath, Msg: "chapter must be a description string or a mapping"}
		}
		book.Chapters = append(book.Chapters, chapter)
	}

	return book, nil
}

// childValue returns the value node for a mapping key, or nil.
func childValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// scalarChild returns the string value of a mapping key, or empty.
func scalarChild(mapping *yaml.Node, key string) string {
	if n := childValue(mapping, key); n != nil && n.Kind == yaml.ScalarNode {
		return n.Value
	}
	return ""
}
