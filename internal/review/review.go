package review

import (
	"strings"
)

const authorDelimiter = "|"

// AuthorQuery joins a delimiter separated author list the way the review
// service expects, e.g. "Smith|Jones" becomes "Smith and Jones".
func AuthorQuery(author string) string {
	return strings.ReplaceAll(author, authorDelimiter, " and ")
}

// Result is the review lookup relayed to the reviews page.
type Result struct {
	Title       string
	Author      string
	Raw         map[string]any
	Reviews     []map[string]any
	Count       int
	Unavailable bool
}
