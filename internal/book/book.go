package book

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// listDelimiter separates tokens in the authors and genres columns.
const listDelimiter = "|"

// Book represents one row of the book2018 table.
type Book struct {
	ID          string  `json:"book_id"`
	Title       string  `json:"title"`
	Authors     string  `json:"authors"`
	Description string  `json:"description,omitempty"`
	Edition     string  `json:"edition,omitempty"`
	Format      string  `json:"format,omitempty"`
	Pages       int     `json:"pages,omitempty"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
	ReviewCount int     `json:"review_count"`
	Genres      string  `json:"genres"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// GenreList returns the genres as a human readable, comma separated list.
func (b Book) GenreList() string {
	return joinTokens(b.Genres)
}

// AuthorList returns the authors as a human readable, comma separated list.
func (b Book) AuthorList() string {
	return joinTokens(b.Authors)
}

func joinTokens(s string) string {
	return strings.ReplaceAll(s, listDelimiter, ", ")
}

// Listing is one page of books starting with a letter.
type Listing struct {
	Window Window `json:"window"`
	Books  []Book `json:"books"`
}

// Detail is a single book prepared for display.
type Detail struct {
	Book   Book   `json:"book"`
	Genres string `json:"genres_list"`
}
