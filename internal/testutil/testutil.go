package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"bookbrowser/internal/book"

	"github.com/gorilla/mux"
)

// TestBook is a fixture book for testing
var TestBook = book.Book{
	ID:          "2767052",
	Title:       "The Hunger Games",
	Authors:     "Suzanne Collins",
	Description: "Winning will make you famous. Losing means certain death.",
	Edition:     "First Edition",
	Format:      "Hardcover",
	Pages:       374,
	Rating:      4.33,
	RatingCount: 6376780,
	ReviewCount: 160706,
	Genres:      "Young Adult|Fiction|Science Fiction|Dystopia",
	ImageURL:    "https://images.example.com/hunger-games.jpg",
}

// TestBooks returns n fixture books whose titles start with prefix.
func TestBooks(prefix string, n int) []book.Book {
	out := make([]book.Book, 0, n)
	for i := 0; i < n; i++ {
		b := TestBook
		b.ID = prefix + "-" + string(rune('a'+i))
		b.Title = prefix + " Book " + string(rune('a'+i))
		out = append(out, b)
	}
	return out
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewRequest creates a new HTTP request with gorilla/mux route variables set
func NewRequest(method, path string, vars map[string]string) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

// NewRequestWithAccept creates a new HTTP request with an Accept header
func NewRequestWithAccept(method, path string, vars map[string]string, accept string) *http.Request {
	r := NewRequest(method, path, vars)
	if accept != "" {
		r.Header.Set("Accept", accept)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records a JSON HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}
