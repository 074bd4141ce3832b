package httpx

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// PathVar returns a decoded route variable. The router matches on the
// encoded path so that an escaped "/" stays inside its segment.
func PathVar(r *http.Request, name string) string {
	raw := mux.Vars(r)[name]
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
