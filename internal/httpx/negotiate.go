package httpx

import (
	"net/http"

	"github.com/munnerz/goautoneg"
)

// Format is the response representation chosen for a request.
type Format int

const (
	FormatUnacceptable Format = iota
	FormatHTML
	FormatJSON
)

const (
	mimeHTML = "text/html"
	mimeJSON = "application/json"
)

var offered = []string{mimeHTML, mimeJSON}

// Negotiate picks HTML or JSON from the Accept header. A missing header means
// the client takes anything and gets HTML.
func Negotiate(r *http.Request) Format {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return FormatHTML
	}

	switch goautoneg.Negotiate(accept, offered) {
	case mimeHTML:
		return FormatHTML
	case mimeJSON:
		return FormatJSON
	default:
		return FormatUnacceptable
	}
}

// NotAcceptable answers a request whose Accept header matches neither format.
func NotAcceptable(w http.ResponseWriter) {
	http.Error(w, "Not Acceptable", http.StatusNotAcceptable)
}
